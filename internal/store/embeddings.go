package store

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"
)

// GetTermEmbeddings fetches cached vectors for the given terms,
// returning only entries whose stored dimensionality matches dim.
// Terms without a usable cache entry are simply absent from the result.
func (s *Store) GetTermEmbeddings(ctx context.Context, terms []string, dim int) (map[string][]float32, error) {
	if len(terms) == 0 {
		return map[string][]float32{}, nil
	}

	query := `SELECT term, embedding
		FROM term_embeddings
		WHERE term = ANY($1) AND vector_dims(embedding) = $2`

	rows, err := s.conn.Query(ctx, query, terms, dim)
	if err != nil {
		return nil, fmt.Errorf("failed to query term embeddings: %w", err)
	}
	defer rows.Close()

	cached := make(map[string][]float32, len(terms))
	for rows.Next() {
		var term string
		var embedding pgvector.Vector
		if err := rows.Scan(&term, &embedding); err != nil {
			return nil, fmt.Errorf("failed to scan term embedding: %w", err)
		}
		cached[term] = embedding.Slice()
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read term embeddings: %w", err)
	}

	return cached, nil
}

// SaveTermEmbeddings upserts freshly computed vectors. terms and
// embeddings run in parallel; a re-embedded term overwrites its old
// vector.
func (s *Store) SaveTermEmbeddings(ctx context.Context, terms []string, embeddings [][]float32) error {
	if len(terms) != len(embeddings) {
		return fmt.Errorf("term and embedding counts differ: %d vs %d", len(terms), len(embeddings))
	}
	if len(terms) == 0 {
		return nil
	}

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO term_embeddings (term, embedding)
		VALUES ($1, $2)
		ON CONFLICT (term) DO UPDATE SET embedding = EXCLUDED.embedding`

	for i, term := range terms {
		if _, err := tx.Exec(ctx, query, term, pgvector.NewVector(embeddings[i])); err != nil {
			return fmt.Errorf("failed to upsert embedding for %q: %w", term, err)
		}
	}

	return tx.Commit(ctx)
}
