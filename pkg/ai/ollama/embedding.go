package ollama

import (
	"context"
	"fmt"
	"strings"

	"github.com/theideaforge/forge/pkg/ai"

	"github.com/ollama/ollama/api"
)

const defaultDimensions = 768

// GenerateEmbeddings creates vector embeddings for the given inputs in a
// single batched call to the embedding model. The result preserves input
// order; blank inputs produce zero vectors without hitting the model.
func (c *ForgeOllamaClient) GenerateEmbeddings(
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

	req := &api.EmbedRequest{
		Model: c.embeddingModel,
		Input: modelIn,
	}

	if err := c.reqLock.Acquire(rCtx, 1); err != nil {
		return nil, err
	}
	defer c.reqLock.Release(1)

	res, err := c.Client.Embed(rCtx, req)
	if err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}
	if len(res.Embeddings) != len(modelIn) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d inputs",
			ai.ErrMalformedResponse, len(res.Embeddings), len(modelIn))
	}

	metrics := ai.ModelMetrics{
		InputTokens: res.PromptEvalCount,
		TotalTokens: res.PromptEvalCount,
		DurationMs:  res.TotalDuration.Milliseconds(),
	}
	c.modifyMetrics(metrics)

	for i, emb := range res.Embeddings {
		vec := make([]float32, 0, len(emb))
		for _, v := range emb {
			vec = append(vec, float32(v))
		}
		out[idxMap[i]] = vec
	}
	return out, nil
}

// LoadModels verifies the Ollama server is reachable and that the
// embedding model answers a probe input. The forge pipeline treats a
// failure here as a fatal startup condition.
func (c *ForgeOllamaClient) LoadModels(ctx context.Context) error {
	if err := c.Client.Heartbeat(ctx); err != nil {
		return fmt.Errorf("%w: %v", ai.ErrUnavailable, err)
	}

	vecs, err := c.GenerateEmbeddings(ctx, []string{"idea"})
	if err != nil {
		return fmt.Errorf("embedding model probe: %w", err)
	}
	if len(vecs) != 1 || len(vecs[0]) == 0 {
		return fmt.Errorf("%w: embedding probe returned no vector", ai.ErrMalformedResponse)
	}
	return nil
}
