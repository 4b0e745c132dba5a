package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	pgxv5 "github.com/jackc/pgx/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/theideaforge/forge/pkg/forge"
)

// Session is one stored forge run: the submitted text together with the
// extracted terms, generated prompts and renderable graph payload. The
// jsonb columns round-trip through the forge types.
type Session struct {
	ID        int64                   `json:"-"`
	PublicID  string                  `json:"session_id"`
	UserID    int64                   `json:"-"`
	InputText string                  `json:"input_text"`
	KeyTerms  []string                `json:"key_terms"`
	Prompts   []forge.AgitationPrompt `json:"prompts"`
	GraphData forge.DisplayData       `json:"graph_data"`
	CreatedAt time.Time               `json:"timestamp"`
}

type NewSessionParams struct {
	UserID    int64
	InputText string
	KeyTerms  []string
	Prompts   []forge.AgitationPrompt
	GraphData forge.DisplayData
}

const sessionColumns = `id, public_id, user_id, input_text, key_terms, prompts, graph_data, created_at`

func scanSession(row pgxv5.Row) (*Session, error) {
	var session Session
	err := row.Scan(
		&session.ID,
		&session.PublicID,
		&session.UserID,
		&session.InputText,
		&session.KeyTerms,
		&session.Prompts,
		&session.GraphData,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// SaveSession persists one forge run and returns the stored row. The
// public id is a fresh nanoid; retrying on the astronomically unlikely
// collision is left to the caller.
func (s *Store) SaveSession(ctx context.Context, params NewSessionParams) (*Session, error) {
	publicID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	keyTerms := params.KeyTerms
	if keyTerms == nil {
		keyTerms = []string{}
	}
	prompts := params.Prompts
	if prompts == nil {
		prompts = []forge.AgitationPrompt{}
	}

	query := `INSERT INTO sessions (public_id, user_id, input_text, key_terms, prompts, graph_data)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + sessionColumns

	session, err := scanSession(s.conn.QueryRow(ctx, query,
		publicID,
		params.UserID,
		params.InputText,
		keyTerms,
		prompts,
		params.GraphData,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}

	return session, nil
}

// ListSessions returns one page of a user's sessions, newest first.
func (s *Store) ListSessions(ctx context.Context, userID int64, limit, offset int) ([]Session, error) {
	query := `SELECT ` + sessionColumns + `
		FROM sessions WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.conn.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}

	return sessions, nil
}

// CountSessions returns the total number of sessions a user owns, for
// pagination metadata.
func (s *Store) CountSessions(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := s.conn.QueryRow(ctx, `SELECT COUNT(*) FROM sessions WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

// GetLatestSession returns the user's most recent session, or
// ErrNotFound when they have none.
func (s *Store) GetLatestSession(ctx context.Context, userID int64) (*Session, error) {
	query := `SELECT ` + sessionColumns + `
		FROM sessions WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	session, err := scanSession(s.conn.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgxv5.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query latest session: %w", err)
	}

	return session, nil
}

// GetSessionByPublicID returns one of the user's sessions by its public
// id. Sessions owned by other users are indistinguishable from missing
// ones.
func (s *Store) GetSessionByPublicID(ctx context.Context, userID int64, publicID string) (*Session, error) {
	query := `SELECT ` + sessionColumns + `
		FROM sessions WHERE user_id = $1 AND public_id = $2`

	session, err := scanSession(s.conn.QueryRow(ctx, query, userID, publicID))
	if err != nil {
		if errors.Is(err, pgxv5.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	return session, nil
}

// DeleteSession removes one of the user's sessions by public id,
// returning ErrNotFound when nothing was deleted.
func (s *Store) DeleteSession(ctx context.Context, userID int64, publicID string) error {
	tag, err := s.conn.Exec(ctx,
		`DELETE FROM sessions WHERE user_id = $1 AND public_id = $2`,
		userID, publicID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
