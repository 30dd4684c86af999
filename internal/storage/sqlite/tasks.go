package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/planio-app/planio/internal/models"
)

// CreateTask persists a new task.
func (s *SQLiteStore) CreateTask(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.CreatedAt == 0 {
		task.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, user_id, title, notes, done, due_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.UserID, task.Title, task.Notes, boolToInt(task.Done), task.DueDate, task.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// GetTask retrieves a task by ID scoped to the user.
// Returns (nil, nil) if it does not exist.
func (s *SQLiteStore) GetTask(ctx context.Context, userID, id string) (*models.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, notes, done, due_date, created_at
		 FROM tasks WHERE user_id = ? AND id = ?`,
		userID, id,
	)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// ListTasks retrieves all tasks for a user, soonest due first with undated
// tasks at the end.
func (s *SQLiteStore) ListTasks(ctx context.Context, userID string) ([]*models.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, title, notes, done, due_date, created_at
		 FROM tasks WHERE user_id = ?
		 ORDER BY CASE WHEN due_date = 0 THEN 1 ELSE 0 END, due_date, created_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask writes all of the task's mutable fields.
func (s *SQLiteStore) UpdateTask(ctx context.Context, task *models.Task) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, notes = ?, done = ?, due_date = ? WHERE user_id = ? AND id = ?`,
		task.Title, task.Notes, boolToInt(task.Done), task.DueDate, task.UserID, task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return requireRow(res, "task", task.ID)
}

// DeleteTask removes a task.
func (s *SQLiteStore) DeleteTask(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE user_id = ? AND id = ?`, userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireRow(res, "task", id)
}

func scanTask(row scanner) (*models.Task, error) {
	task := &models.Task{}
	var done int
	if err := row.Scan(&task.ID, &task.UserID, &task.Title, &task.Notes, &done, &task.DueDate, &task.CreatedAt); err != nil {
		return nil, err
	}
	task.Done = done != 0
	return task, nil
}
