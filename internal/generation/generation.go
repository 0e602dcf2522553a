package generation

import (
	"context"
	"errors"
	"strings"
)

// Client sends one prompt to a text generation provider and returns the raw text.
// Implementations must not retry: a failed call is reported and the review
// continues with deterministic fallback data.
type Client interface {
	Generate(ctx context.Context, p Prompt) (string, error)
	Name() string
}

// Prompt is a system/user message pair.
type Prompt struct {
	System string
	User   string
}

var (
	// ErrNotConfigured is returned by the placeholder client.
	ErrNotConfigured = errors.New("generation provider not configured")
	// ErrEmptyResponse is returned when a provider answers with no content.
	ErrEmptyResponse = errors.New("generation response empty")
	// ErrInvalidJSON is returned by Parse when no JSON object can be recovered.
	ErrInvalidJSON = errors.New("generation response is not valid JSON")
)

// Outcome codes recorded per review and in metrics.
const (
	OutcomeOK              = "OK"
	ErrorCodeTimeout       = "GENERATION_TIMEOUT"
	ErrorCodeFailed        = "GENERATION_FAILED"
	ErrorCodeInvalidJSON   = "GENERATION_INVALID_JSON"
	ErrorCodeDisabled      = "GENERATION_DISABLED"
	ErrorCodeEmptyResponse = "GENERATION_EMPTY"
)

// Classify maps a generation or parse error to an outcome code.
func Classify(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrNotConfigured):
		return ErrorCodeDisabled
	case errors.Is(err, context.DeadlineExceeded), strings.Contains(err.Error(), "Client.Timeout"):
		return ErrorCodeTimeout
	case errors.Is(err, ErrInvalidJSON):
		return ErrorCodeInvalidJSON
	case errors.Is(err, ErrEmptyResponse):
		return ErrorCodeEmptyResponse
	default:
		return ErrorCodeFailed
	}
}

// PlaceholderClient is used when no provider is configured.
type PlaceholderClient struct{}

// Generate returns ErrNotConfigured.
func (PlaceholderClient) Generate(context.Context, Prompt) (string, error) {
	return "", ErrNotConfigured
}

func (PlaceholderClient) Name() string { return "placeholder" }
