package outwriter

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/tcscore/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, writeWithFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello")
		return err
	}, "Wrote text"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	boom := errors.New("boom")
	assert.ErrorIs(t, writeWithFile(path, func(io.Writer) error { return boom }, "x"), boom)
	assert.Error(t, writeWithFile(filepath.Join(path, "nested"), func(io.Writer) error { return nil }, "x"))
}

func TestCreateFormatter(t *testing.T) {
	assert.Equal(t, "0.4", createFormatter(1)(0.42))
	assert.Equal(t, "0.4200", createFormatter(4)(0.42))
}

func TestHeader(t *testing.T) {
	assert.Equal(t, "Title", header(&contract.Config{}, "🧮", "Title"))
	assert.Equal(t, "🧮 Title", header(&contract.Config{UseEmojis: true}, "🧮", "Title"))
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeYAML(&buf, map[string]int{"b": 2, "a": 1}))
	assert.Equal(t, "a: 1\nb: 2\n", buf.String())
}
