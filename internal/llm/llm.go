// README: Generation provider contract shared by all model backends.
package llm

import (
	"context"
	"errors"
)

// ErrUnknownModel is returned when a model key or display name is not in the
// registry. Surfaced to API callers as a rejected request.
var ErrUnknownModel = errors.New("unknown model")

// ErrNotConfigured is returned when a registered model's provider has no
// credentials. Generating agents degrade to their fallbacks on this error.
var ErrNotConfigured = errors.New("model backend not configured")

// Response is the normalized output of one generation call.
type Response struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Request carries one prompt plus the telemetry identifiers for the call.
type Request struct {
	Model  string
	Agent  string
	Action string
	Prompt string
}

// Backend is one concrete model binding (provider + model id).
type Backend interface {
	Generate(ctx context.Context, prompt string) (*Response, error)
}

// Generator is what the agents consume: a traced, registry-routed generate call.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}
