package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/planio-app/planio/internal/models"
)

// CreateHabit persists a habit and any initial completion dates.
func (s *SQLiteStore) CreateHabit(ctx context.Context, habit *models.Habit) error {
	if habit.ID == "" {
		habit.ID = uuid.New().String()
	}
	if habit.CreatedAt == 0 {
		habit.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO habits (id, user_id, name, category, created_at) VALUES (?, ?, ?, ?, ?)`,
		habit.ID, habit.UserID, habit.Name, habit.Category, habit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert habit: %w", err)
	}

	for _, day := range habit.CompletedDates {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO habit_completions (habit_id, day) VALUES (?, ?)`,
			habit.ID, day,
		)
		if err != nil {
			return fmt.Errorf("failed to insert habit completion: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetHabit retrieves a habit and its completion dates.
// Returns (nil, nil) if it does not exist.
func (s *SQLiteStore) GetHabit(ctx context.Context, userID, id string) (*models.Habit, error) {
	habit := &models.Habit{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, category, created_at FROM habits WHERE user_id = ? AND id = ?`,
		userID, id,
	).Scan(&habit.ID, &habit.UserID, &habit.Name, &habit.Category, &habit.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}

	if err := s.loadCompletions(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// ListHabits retrieves all habits for a user with their completion dates.
func (s *SQLiteStore) ListHabits(ctx context.Context, userID string) ([]*models.Habit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, name, category, created_at FROM habits WHERE user_id = ? ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	defer rows.Close()

	var habits []*models.Habit
	for rows.Next() {
		habit := &models.Habit{}
		if err := rows.Scan(&habit.ID, &habit.UserID, &habit.Name, &habit.Category, &habit.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, habit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate habits: %w", err)
	}

	for _, habit := range habits {
		if err := s.loadCompletions(ctx, habit); err != nil {
			return nil, err
		}
	}
	return habits, nil
}

// UpdateHabit writes the habit's name and category. Completion dates are
// managed through ReplaceHabitCompletions.
func (s *SQLiteStore) UpdateHabit(ctx context.Context, habit *models.Habit) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE habits SET name = ?, category = ? WHERE user_id = ? AND id = ?`,
		habit.Name, habit.Category, habit.UserID, habit.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	return requireRow(res, "habit", habit.ID)
}

// ReplaceHabitCompletions swaps the habit's completion set atomically, which
// makes the toggle-today operation idempotent at the persistence layer.
func (s *SQLiteStore) ReplaceHabitCompletions(ctx context.Context, userID, id string, dates []string) error {
	var owner string
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id FROM habits WHERE user_id = ? AND id = ?`, userID, id,
	).Scan(&owner)
	if err == sql.ErrNoRows {
		return fmt.Errorf("habit not found: %s", id)
	}
	if err != nil {
		return fmt.Errorf("failed to check habit: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM habit_completions WHERE habit_id = ?`, id); err != nil {
		return fmt.Errorf("failed to clear habit completions: %w", err)
	}
	for _, day := range dates {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO habit_completions (habit_id, day) VALUES (?, ?)`, id, day,
		)
		if err != nil {
			return fmt.Errorf("failed to insert habit completion: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteHabit removes a habit; its completions cascade.
func (s *SQLiteStore) DeleteHabit(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM habits WHERE user_id = ? AND id = ?`, userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return requireRow(res, "habit", id)
}

func (s *SQLiteStore) loadCompletions(ctx context.Context, habit *models.Habit) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT day FROM habit_completions WHERE habit_id = ? ORDER BY day`, habit.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get habit completions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return fmt.Errorf("failed to scan habit completion: %w", err)
		}
		habit.CompletedDates = append(habit.CompletedDates, day)
	}
	return rows.Err()
}
