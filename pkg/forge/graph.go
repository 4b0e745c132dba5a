package forge

import (
	"context"
	"fmt"
	"math"
)

// similarityThreshold is the strict lower bound for connecting two
// terms; pairs at exactly the threshold stay unconnected.
const similarityThreshold = 0.4

// RelationSimilar is the fixed relation label carried by every edge.
const RelationSimilar = "semantically similar"

// Embedder produces fixed-dimension vectors for a batch of terms,
// preserving input order. Both pkg/ai clients and the read-through
// embedding cache satisfy this interface.
type Embedder interface {
	GenerateEmbeddings(ctx context.Context, inputs []string) ([][]float32, error)
}

// Edge connects two nodes of a ConceptGraph by index. Source is always
// the lower index, so each unordered pair appears at most once and
// self-loops cannot be represented.
type Edge struct {
	Source   int     `json:"source"`
	Target   int     `json:"target"`
	Weight   float64 `json:"weight"`
	Relation string  `json:"relation"`
}

// ConceptGraph is an undirected weighted graph over extracted terms.
// Nodes keep the extraction order; edges connect term pairs whose
// embedding cosine similarity exceeds the threshold.
type ConceptGraph struct {
	Nodes []string `json:"nodes"`
	Edges []Edge   `json:"edges"`
}

// BuildGraph embeds all terms in one batched call and connects every
// pair whose cosine similarity is strictly greater than the threshold.
// Every term becomes a node whether or not it gains edges; an empty
// term list yields an empty graph without touching the embedder.
func BuildGraph(ctx context.Context, src Embedder, terms []string) (*ConceptGraph, error) {
	graph := &ConceptGraph{
		Nodes: append([]string(nil), terms...),
		Edges: []Edge{},
	}
	if len(terms) == 0 {
		return graph, nil
	}

	embeddings, err := src.GenerateEmbeddings(ctx, terms)
	if err != nil {
		return nil, fmt.Errorf("failed to embed terms: %w", err)
	}
	if len(embeddings) != len(terms) {
		return nil, fmt.Errorf("embedding count mismatch: got %d want %d", len(embeddings), len(terms))
	}

	for i := 0; i < len(terms); i++ {
		for j := i + 1; j < len(terms); j++ {
			similarity := CosineSimilarity(embeddings[i], embeddings[j])
			if similarity > similarityThreshold {
				graph.Edges = append(graph.Edges, Edge{
					Source:   i,
					Target:   j,
					Weight:   similarity,
					Relation: RelationSimilar,
				})
			}
		}
	}

	return graph, nil
}

// CosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched dimensions or zero vectors yield 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
