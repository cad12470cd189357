package metrics

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/huangsam/tcscore/schema"
)

var errInvalidUTF8 = errors.New("text is not valid UTF-8")

// checkInput rejects texts that cannot be segmented.
func checkInput(category schema.Category, text string) error {
	if !utf8.ValidString(text) {
		return schema.NewProviderError(category, schema.MalformedInput, errInvalidUTF8)
	}
	return nil
}

// classify wraps a dependency failure into a ProviderError. Deadline errors map
// to timeout, everything else to the given reason.
func classify(ctx context.Context, category schema.Category, reason schema.FailureReason, err error) error {
	if pe, ok := schema.AsProviderError(err); ok {
		return pe
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return schema.NewProviderError(category, schema.ProviderTimeout, err)
	}
	return schema.NewProviderError(category, reason, err)
}
