package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theideaforge/forge/pkg/ai"

	"github.com/openai/openai-go/v3"
)

// GenerateCompletion sends a single-turn prompt to the chat model and
// returns the generated completion as plain text.
func (c *ForgeOpenAIClient) GenerateCompletion(
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

	msgs := []openai.ChatCompletionMessageParamUnion{}
	if options.SystemPrompt != "" {
		msgs = append(msgs, openai.SystemMessage(options.SystemPrompt))
	}
	msgs = append(msgs, openai.UserMessage(prompt))

	body := openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(options.Model),
		Messages:            msgs,
		Temperature:         openai.Float(options.Temperature),
		MaxCompletionTokens: openai.Int(int64(options.MaxTokens)),
	}

	if err := c.reqLock.Acquire(rCtx, 1); err != nil {
		return "", err
	}
	defer c.reqLock.Release(1)

	start := time.Now()
	response, err := c.Client.Chat.Completions.New(rCtx, body)
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	duration := time.Since(start).Milliseconds()

	metrics := ai.ModelMetrics{
		InputTokens:  int(response.Usage.PromptTokens),
		OutputTokens: int(response.Usage.CompletionTokens),
		TotalTokens:  int(response.Usage.TotalTokens),
		DurationMs:   duration,
	}
	c.modifyMetrics(metrics)

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ai.ErrMalformedResponse)
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
