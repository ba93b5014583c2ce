// Package agent defines the text-generation capability consumed by the
// measurement CLI when probing live agents, together with an OpenAI-backed
// implementation and a scripted one for tests and offline use. The
// measurement core never depends on this package; it only consumes the
// response sets a Prober collects.
package agent

import "context"

// ProviderInfo describes a text-generation source for reporting.
type ProviderInfo struct {
	// Name identifies the backing service (e.g., "openai", "scripted").
	Name string `json:"name"`
	// Model is the concrete model identifier, if any.
	Model string `json:"model,omitempty"`
}

// TextGenerator is the capability interface for a distinguishable
// text-generation source: any type that can produce text for a prompt.
// Implementations carry their own client state, injected at construction;
// no package-level singletons.
type TextGenerator interface {
	// Generate produces one response for the prompt.
	//
	// Parameters:
	//   - ctx: The context for cancellation and deadlines.
	//   - prompt: The prompt text.
	//
	// Returns:
	//   - string: The generated response.
	//   - error: Any generation failure; the caller decides on retries.
	Generate(ctx context.Context, prompt string) (string, error)

	// Info returns the provider description.
	Info() ProviderInfo
}
