package store

import (
	"context"
	"fmt"

	"github.com/theideaforge/forge/pkg/forge"
	"github.com/theideaforge/forge/pkg/logger"
)

// EmbeddingCache is the persistence surface CachedEmbedder needs;
// *Store satisfies it.
type EmbeddingCache interface {
	GetTermEmbeddings(ctx context.Context, terms []string, dim int) (map[string][]float32, error)
	SaveTermEmbeddings(ctx context.Context, terms []string, embeddings [][]float32) error
}

// CachedEmbedder is a read-through cache over a real embedding client.
// Cache hits skip the model entirely; misses are embedded in one batch
// and written back. Cache write failures are logged and swallowed, the
// vectors are still returned.
type CachedEmbedder struct {
	store  EmbeddingCache
	client forge.Embedder
	dim    int
}

type NewCachedEmbedderParams struct {
	Store  EmbeddingCache
	Client forge.Embedder
	// Dim is the expected vector dimensionality; cache entries with a
	// different dimensionality are treated as misses.
	Dim int
}

func NewCachedEmbedder(params NewCachedEmbedderParams) *CachedEmbedder {
	return &CachedEmbedder{
		store:  params.Store,
		client: params.Client,
		dim:    params.Dim,
	}
}

// GenerateEmbeddings returns one vector per input, in input order.
func (e *CachedEmbedder) GenerateEmbeddings(ctx context.Context, inputs []string) ([][]float32, error) {
	if len(inputs) == 0 {
		return [][]float32{}, nil
	}

	cached, err := e.store.GetTermEmbeddings(ctx, inputs, e.dim)
	if err != nil {
		logger.Warn("embedding cache lookup failed, embedding all terms", "error", err)
		cached = map[string][]float32{}
	}

	missing := make([]string, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, input := range inputs {
		if _, hit := cached[input]; hit {
			continue
		}
		if _, dup := seen[input]; dup {
			continue
		}
		seen[input] = struct{}{}
		missing = append(missing, input)
	}

	if len(missing) > 0 {
		fresh, err := e.client.GenerateEmbeddings(ctx, missing)
		if err != nil {
			return nil, err
		}
		if len(fresh) != len(missing) {
			return nil, fmt.Errorf("embedding count mismatch: got %d want %d", len(fresh), len(missing))
		}
		for i, term := range missing {
			cached[term] = fresh[i]
		}
		if err := e.store.SaveTermEmbeddings(ctx, missing, fresh); err != nil {
			logger.Warn("failed to cache term embeddings", "error", err, "terms", len(missing))
		}
	}

	out := make([][]float32, len(inputs))
	for i, input := range inputs {
		out[i] = cached[input]
	}
	return out, nil
}
