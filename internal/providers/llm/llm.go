package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse reports a successful completion that carried no text
// parts. Callers treat it as a malformed response, not an outage.
var ErrEmptyResponse = errors.New("empty model response")

type Provider interface {
	// GenerateJSON runs one completion constrained to a single JSON object,
	// with the system instruction establishing the model's persona.
	GenerateJSON(ctx context.Context, system, prompt string) (string, error)
	Close() error
}
