package agent

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	apperrors "github.com/certlab/certmeter/internal/errors"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// chatCompleter is the slice of the OpenAI client the provider uses,
// narrowed for testability.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAI is a TextGenerator backed by the OpenAI chat-completion API.
type OpenAI struct {
	client      chatCompleter
	model       string
	temperature float32
}

// OpenAIOption configures an OpenAI provider during construction.
type OpenAIOption func(*OpenAI)

// WithModel selects the model identifier.
func WithModel(model string) OpenAIOption {
	return func(p *OpenAI) { p.model = model }
}

// WithTemperature sets the sampling temperature. Consistency probing
// usually wants the deployment's production temperature, not zero:
// measuring a deterministically-decoded agent hides the variance the
// metric exists to expose.
func WithTemperature(t float32) OpenAIOption {
	return func(p *OpenAI) { p.temperature = t }
}

// NewOpenAI creates a provider calling the OpenAI API with the given key.
//
// Parameters:
//   - apiKey: The API key for authentication.
//   - opts: Optional configuration.
//
// Returns:
//   - *OpenAI: The configured provider.
func NewOpenAI(apiKey string, opts ...OpenAIOption) *OpenAI {
	p := &OpenAI{
		client: openai.NewClient(apiKey),
		model:  DefaultOpenAIModel,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Generate produces one response for the prompt via chat completion.
//
// Parameters:
//   - ctx: The context for cancellation and deadlines.
//   - prompt: The prompt text.
//
// Returns:
//   - string: The first choice's message content.
//   - error: The wrapped API error, or an error if no choice was returned.
func (p *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: p.temperature,
	})
	if err != nil {
		return "", apperrors.WrapError(err, "openai chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.NewInvalidInputError("response", "openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Info returns the provider description.
func (p *OpenAI) Info() ProviderInfo {
	return ProviderInfo{Name: "openai", Model: p.model}
}
