package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetResumeText returns the stored resume text for a user.
// An empty string means no resume has been uploaded yet.
func (db *DB) GetResumeText(ctx context.Context, userID uuid.UUID) (string, error) {
	var text string
	err := db.pool.QueryRow(ctx,
		`SELECT COALESCE(resume_text, '') FROM users WHERE id = $1`,
		userID,
	).Scan(&text)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to get resume text: %w", err)
	}
	return text, nil
}

// SetResumeText overwrites the stored resume text for a user.
// A user has at most one active resume; re-uploads replace the previous text.
func (db *DB) SetResumeText(ctx context.Context, userID uuid.UUID, text string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE users SET resume_text = $1, updated_at = NOW() WHERE id = $2`,
		text, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set resume text: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no user with id %s", userID)
	}
	return nil
}
