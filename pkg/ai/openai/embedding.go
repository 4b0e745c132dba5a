package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theideaforge/forge/pkg/ai"

	"github.com/openai/openai-go/v3"
)

const defaultDimensions = 768

// GenerateEmbeddings creates vector embeddings for the given inputs in a
// single batched request. The result preserves input order; blank inputs
// produce zero vectors without hitting the model.
func (c *ForgeOpenAIClient) GenerateEmbeddings(
	ctx context.Context,
	inputs []string,
) ([][]float32, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	dim := c.embedDim
	if dim <= 0 {
		dim = defaultDimensions
	}

	idxMap := make([]int, 0, len(inputs))
	modelIn := make([]string, 0, len(inputs))
	out := make([][]float32, len(inputs))
	for i, in := range inputs {
		if strings.TrimSpace(in) == "" {
			out[i] = make([]float32, dim)
			continue
		}
		idxMap = append(idxMap, i)
		modelIn = append(modelIn, in)
	}
	if len(modelIn) == 0 {
		return out, nil
	}

	rCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body := openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: modelIn},
		Model: openai.EmbeddingModel(c.embeddingModel),
	}

	if err := c.reqLock.Acquire(rCtx, 1); err != nil {
		return nil, err
	}
	defer c.reqLock.Release(1)

	start := time.Now()
	response, err := c.Client.Embeddings.New(rCtx, body)
	if err != nil {
		return nil, fmt.Errorf("openai embed: %w", err)
	}

	metrics := ai.ModelMetrics{
		InputTokens: int(response.Usage.PromptTokens),
		TotalTokens: int(response.Usage.TotalTokens),
		DurationMs:  time.Since(start).Milliseconds(),
	}
	c.modifyMetrics(metrics)

	if len(response.Data) != len(modelIn) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d inputs",
			ai.ErrMalformedResponse, len(response.Data), len(modelIn))
	}

	for _, embedding := range response.Data {
		dataIdx := int(embedding.Index)
		if dataIdx < 0 || dataIdx >= len(modelIn) {
			return nil, fmt.Errorf("%w: embedding index out of range: %d",
				ai.ErrMalformedResponse, embedding.Index)
		}
		vec := make([]float32, 0, len(embedding.Embedding))
		for _, v := range embedding.Embedding {
			vec = append(vec, float32(v))
		}
		out[idxMap[dataIdx]] = vec
	}
	return out, nil
}

// LoadModels verifies the endpoint answers an embedding probe. A failure
// here is a fatal startup condition for the forge pipeline.
func (c *ForgeOpenAIClient) LoadModels(ctx context.Context) error {
	vecs, err := c.GenerateEmbeddings(ctx, []string{"idea"})
	if err != nil {
		return fmt.Errorf("embedding model probe: %w", err)
	}
	if len(vecs) != 1 || len(vecs[0]) == 0 {
		return fmt.Errorf("%w: embedding probe returned no vector", ai.ErrMalformedResponse)
	}
	return nil
}
