package schema

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across packages.
var (
	// ErrEmptyMetricSet is returned when a category has no metrics to aggregate.
	ErrEmptyMetricSet = errors.New("metric set is empty")

	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingProvider is returned when a scorer lacks a provider for a category.
	ErrMissingProvider = errors.New("missing metric provider")
)

// FailureReason classifies why a provider could not produce metrics.
type FailureReason string

// All provider failure reasons.
const (
	ModelUnavailable FailureReason = "model_unavailable"
	MalformedInput   FailureReason = "malformed_input"
	ProviderTimeout  FailureReason = "timeout"
	UpstreamFailure  FailureReason = "upstream"
)

// ProviderError is the typed failure returned by a metric provider.
type ProviderError struct {
	Category Category
	Reason   FailureReason
	Err      error
}

// NewProviderError builds a ProviderError for the category.
func NewProviderError(category Category, reason FailureReason, err error) *ProviderError {
	return &ProviderError{Category: category, Reason: reason, Err: err}
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s provider failed (%s)", e.Category, e.Reason)
	}
	return fmt.Sprintf("%s provider failed (%s): %v", e.Category, e.Reason, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// AsProviderError extracts a ProviderError from an error chain.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
