package ai

import "context"

// GenerateOptions holds configuration for generation requests.
type GenerateOptions struct {
	Model        string   // Model identifier to use for generation
	SystemPrompt string   // System instruction prepended to the request
	Temperature  float64  // Sampling temperature (0.0-2.0)
	MaxTokens    int      // Upper bound on generated tokens
}

// ModelMetrics contains accumulated performance metrics from model calls.
type ModelMetrics struct {
	InputTokens    int     `json:"input_tokens"`
	OutputTokens   int     `json:"output_tokens"`
	TotalTokens    int     `json:"total_tokens"`
	DurationMs     int64   `json:"duration_ms"`
	TokenPerSecond float32 `json:"tokens_per_second"`
}

// GenerateOption is a functional option for configuring generation requests.
type GenerateOption func(*GenerateOptions)

// WithModel returns a GenerateOption that sets the model to use.
func WithModel(model string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Model = model
	}
}

// WithSystemPrompt returns a GenerateOption that sets the system
// instruction for the request.
func WithSystemPrompt(prompt string) GenerateOption {
	return func(o *GenerateOptions) {
		o.SystemPrompt = prompt
	}
}

// WithTemperature returns a GenerateOption that sets the sampling
// temperature. Higher values produce more varied output.
func WithTemperature(temp float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = temp
	}
}

// WithMaxTokens returns a GenerateOption that caps the number of tokens
// the model may generate.
func WithMaxTokens(tokens int) GenerateOption {
	return func(o *GenerateOptions) {
		o.MaxTokens = tokens
	}
}

// ForgeAIClient defines the model operations the forge pipeline needs:
// single-turn text generation for agitation prompts and batched term
// embeddings for the concept graph.
//
// Implementations must be safe for concurrent use; one client is created
// at process start and shared across requests.
type ForgeAIClient interface {
	GenerateCompletion(
		ctx context.Context,
		prompt string,
		opts ...GenerateOption,
	) (string, error)

	GenerateEmbeddings(ctx context.Context, inputs []string) ([][]float32, error)

	// LoadModels verifies that the configured models are reachable.
	// Called once at startup; an error is a fatal precondition failure.
	LoadModels(ctx context.Context) error

	ResetMetrics()
	GetMetrics() ModelMetrics
}
