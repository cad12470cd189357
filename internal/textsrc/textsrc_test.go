package textsrc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/tcscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSplit(t *testing.T) {
	text := "First para line one.\nline two.\n\n  \nSecond para.\r\n\r\nThird."
	tests := []struct {
		mode schema.SplitMode
		want []string
	}{
		{schema.SplitNone, []string{"First para line one.\nline two.\n\n  \nSecond para.\n\nThird."}},
		{schema.SplitParagraphs, []string{"First para line one.\nline two.", "Second para.", "Third."}},
		{schema.SplitLines, []string{"First para line one.", "line two.", "Second para.", "Third."}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.want, Split(text, tt.mode))
		})
	}
	assert.Empty(t, Split("   \n\n ", schema.SplitNone))
}

func TestExtractorFor(t *testing.T) {
	content := []byte("hello")
	for _, path := range []string{"a.txt", "README", "notes.TXT"} {
		got, err := ExtractorFor(path)(content)
		require.NoError(t, err)
		assert.Equal(t, []string{"hello"}, got, path)
	}
	_, err := ExtractorFor("x.JSONL")([]byte("hello"))
	assert.Error(t, err, "jsonl lookup ignores case")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	md := writeFile(t, dir, "doc.md", "# Title\n\nOne paragraph.\n\n```go\ncode()\n```\n\nTwo paragraph.\n")
	jsonl := writeFile(t, dir, "rows.jsonl", `{"text":"row one"}`+"\n"+`{"text":"row two"}`+"\n")

	texts, err := Load([]string{"arg one", ""}, []string{md, jsonl, "-"}, schema.SplitNone, strings.NewReader("from stdin"))
	require.NoError(t, err)

	want := []Text{
		{Source: ArgsSource, Body: "arg one"},
		{Source: ArgsSource, Body: ""},
		{Source: md, Body: "Title\n\nOne paragraph.\n\nTwo paragraph."},
		{Source: jsonl, Body: "row one"},
		{Source: jsonl, Body: "row two"},
		{Source: StdinSource, Body: "from stdin"},
	}
	assert.Equal(t, want, texts)
	assert.Equal(t, []string{"arg one", "", want[2].Body, "row one", "row two", "from stdin"}, Bodies(texts))
}

func TestLoadSplitParagraphs(t *testing.T) {
	dir := t.TempDir()
	md := writeFile(t, dir, "doc.md", "# Title\n\nOne paragraph.\n\nTwo paragraph.\n")

	texts, err := Load([]string{"a\n\nb"}, []string{md}, schema.SplitParagraphs, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "Title", "One paragraph.", "Two paragraph."}, Bodies(texts))
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(nil, []string{filepath.Join(dir, "missing.txt")}, schema.SplitNone, nil)
	assert.ErrorContains(t, err, "failed to read")

	bad := writeFile(t, dir, "bad.csv", "id,body\n1,hello\n")
	_, err = Load(nil, []string{bad}, schema.SplitNone, nil)
	assert.ErrorContains(t, err, "failed to extract text from")
}

func TestExtractMarkdown(t *testing.T) {
	src := strings.Join([]string{
		"# Getting *started*",
		"",
		"Run the `tcscore` binary to [score](https://example.com) text.",
		"A soft break joins lines.",
		"",
		"    indented code",
		"",
		"<div>raw html</div>",
		"",
		"- first item",
		"- second item",
		"",
		"> quoted line",
	}, "\n")

	got, err := ExtractMarkdown([]byte(src))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, strings.Join([]string{
		"Getting started",
		"Run the binary to score text. A soft break joins lines.",
		"first item",
		"second item",
		"quoted line",
	}, "\n\n"), got[0])
}

func TestExtractHTML(t *testing.T) {
	src := `<html><head><style>p{}</style><script>var x = 1;</script></head><body>
		<nav><a href="/">Home</a></nav>
		<h1>Release   notes</h1>
		<p>The new <b>scorer</b> is
		faster.</p>
		<ul><li>Item <em>one</em></li><li><p>Item two</p></li></ul>
		<pre><code>ignored()</code></pre>
	</body></html>`

	got, err := ExtractHTML([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"Release notes\n\nThe new scorer is faster.\n\nItem one\n\nItem two"}, got)

	plain, err := HTMLToText("just   <i>inline</i> text")
	require.NoError(t, err)
	assert.Equal(t, "just inline text", plain)
}

func TestExtractJSONL(t *testing.T) {
	got, err := ExtractJSONL([]byte("{\"text\":\"a\",\"id\":1}\n\n  {\"text\":\"b\\nc\"}\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b\nc"}, got)

	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"invalid json", "{\"text\":\"a\"}\n{oops\n", "line 2: invalid JSON"},
		{"missing field", "{\"body\":\"a\"}\n", `line 1: missing string "text" field`},
		{"non string", "{\"text\":42}\n", "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractJSONL([]byte(tt.content))
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestExtractYAML(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
		wantErr bool
	}{
		{"list", "- one\n- two\n", []string{"one", "two"}, false},
		{"mapping", "texts:\n  - |\n    multi\n    line\n  - short\n", []string{"multi\nline\n", "short"}, false},
		{"empty", "", nil, false},
		{"mapping without texts", "items: [a]\n", nil, true},
		{"scalar", "just a string\n", nil, true},
		{"nested", "- [a, b]\n", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractYAML([]byte(tt.content))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractCSV(t *testing.T) {
	got, err := ExtractCSV([]byte("id,Text\n1,\"Hello, world\"\n2,\"multi\nline\"\n3\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello, world", "multi\nline"}, got)

	got, err = ExtractCSV(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ExtractCSV([]byte("id,body\n1,x\n"))
	assert.ErrorContains(t, err, `no "text" column`)
}
