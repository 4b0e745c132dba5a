package ollama

import (
	"context"
	"fmt"
	"strings"

	"github.com/theideaforge/forge/pkg/ai"

	"github.com/ollama/ollama/api"
	"github.com/pkoukk/tiktoken-go"
)

// GenerateCompletion sends a single-turn prompt through POST /api/generate
// and returns the generated text. The system instruction, temperature and
// token cap are taken from the options; the request is always
// non-streaming.
func (c *ForgeOllamaClient) GenerateCompletion(
	ctx context.Context,
	prompt string,
	opts ...ai.GenerateOption,
) (string, error) {
	options := ai.GenerateOptions{
		Model:       c.generateModel,
		Temperature: 0.7,
		MaxTokens:   150,
	}
	for _, o := range opts {
		o(&options)
	}

	rCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	stream := false
	req := &api.GenerateRequest{
		Model:  options.Model,
		Prompt: prompt,
		System: options.SystemPrompt,
		Stream: &stream,
		Options: map[string]any{
			"temperature": options.Temperature,
			"num_predict": options.MaxTokens,
		},
	}

	tokens := 200
	enc, err := tiktoken.GetEncoding("o200k_base")
	if err != nil {
		return "", err
	}
	tokens += len(enc.Encode(options.SystemPrompt+prompt, nil, nil))
	if tokens > 4096 {
		req.Options["num_ctx"] = tokens
	}

	if err := c.reqLock.Acquire(rCtx, 1); err != nil {
		return "", err
	}
	defer c.reqLock.Release(1)

	var final api.GenerateResponse
	if err := c.Client.Generate(rCtx, req, func(gr api.GenerateResponse) error {
		final.Response += gr.Response
		if gr.Done {
			final.Done = true
			final.Metrics = gr.Metrics
		}
		return nil
	}); err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}

	if strings.TrimSpace(final.Response) == "" {
		return "", fmt.Errorf("%w: empty response field", ai.ErrMalformedResponse)
	}

	metrics := ai.ModelMetrics{
		InputTokens:  final.Metrics.PromptEvalCount,
		OutputTokens: final.Metrics.EvalCount,
		TotalTokens:  final.Metrics.PromptEvalCount + final.Metrics.EvalCount,
		DurationMs:   final.Metrics.TotalDuration.Milliseconds(),
	}
	c.modifyMetrics(metrics)

	return strings.TrimSpace(final.Response), nil
}
