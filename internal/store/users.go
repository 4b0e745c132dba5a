package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	pgxv5 "github.com/jackc/pgx/v5"
)

// User is an account row. PasswordHash is a bcrypt digest and never
// leaves the store layer in responses.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// CreateUser inserts a new account and returns it with its assigned id.
// A taken username yields ErrDuplicate.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (*User, error) {
	query := `INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, username, password_hash, created_at`

	var user User
	err := s.conn.QueryRow(ctx, query, username, passwordHash).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &user, nil
}

// GetUserByUsername looks up an account for login. A missing username
// yields ErrNotFound.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT id, username, password_hash, created_at
		FROM users WHERE username = $1`

	var user User
	err := s.conn.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgxv5.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}
