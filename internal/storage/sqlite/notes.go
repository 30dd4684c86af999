package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/planio-app/planio/internal/models"
)

// CreateNote persists a new note.
func (s *SQLiteStore) CreateNote(ctx context.Context, note *models.Note) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if note.CreatedAt == 0 {
		note.CreatedAt = now
	}
	if note.UpdatedAt == 0 {
		note.UpdatedAt = note.CreatedAt
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (id, user_id, title, body, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		note.ID, note.UserID, note.Title, note.Body, note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

// GetNote retrieves a note by ID scoped to the user.
// Returns (nil, nil) if it does not exist.
func (s *SQLiteStore) GetNote(ctx context.Context, userID, id string) (*models.Note, error) {
	note := &models.Note{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, body, created_at, updated_at
		 FROM notes WHERE user_id = ? AND id = ?`,
		userID, id,
	).Scan(&note.ID, &note.UserID, &note.Title, &note.Body, &note.CreatedAt, &note.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return note, nil
}

// ListNotes retrieves all notes for a user, most recently updated first.
func (s *SQLiteStore) ListNotes(ctx context.Context, userID string) ([]*models.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, title, body, created_at, updated_at
		 FROM notes WHERE user_id = ? ORDER BY updated_at DESC, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Body, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}
	return notes, nil
}

// UpdateNote writes the note's title and body and bumps updated_at.
func (s *SQLiteStore) UpdateNote(ctx context.Context, note *models.Note) error {
	note.UpdatedAt = time.Now().Unix()
	res, err := s.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, body = ?, updated_at = ? WHERE user_id = ? AND id = ?`,
		note.Title, note.Body, note.UpdatedAt, note.UserID, note.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return requireRow(res, "note", note.ID)
}

// DeleteNote removes a note.
func (s *SQLiteStore) DeleteNote(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM notes WHERE user_id = ? AND id = ?`, userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return requireRow(res, "note", id)
}
