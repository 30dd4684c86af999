package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/planio-app/planio/internal/models"
)

// CreateSemesterEvent persists an entry on the semester calendar.
func (s *SQLiteStore) CreateSemesterEvent(ctx context.Context, ev *models.SemesterEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.CreatedAt == 0 {
		ev.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO semester_events (id, user_id, title, date, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		ev.ID, ev.UserID, ev.Title, ev.Date, ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert semester event: %w", err)
	}
	return nil
}

// ListSemesterEvents retrieves the user's semester calendar entries, earliest
// day first. The date column sorts lexically because days are YYYY-MM-DD.
func (s *SQLiteStore) ListSemesterEvents(ctx context.Context, userID string) ([]*models.SemesterEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, title, date, created_at
		 FROM semester_events WHERE user_id = ? ORDER BY date, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list semester events: %w", err)
	}
	defer rows.Close()

	var events []*models.SemesterEvent
	for rows.Next() {
		ev := &models.SemesterEvent{}
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Title, &ev.Date, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan semester event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate semester events: %w", err)
	}
	return events, nil
}

// UpdateSemesterEvent writes the event's title and date.
func (s *SQLiteStore) UpdateSemesterEvent(ctx context.Context, ev *models.SemesterEvent) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE semester_events SET title = ?, date = ? WHERE user_id = ? AND id = ?`,
		ev.Title, ev.Date, ev.UserID, ev.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update semester event: %w", err)
	}
	return requireRow(res, "semester event", ev.ID)
}

// DeleteSemesterEvent removes a semester calendar entry.
func (s *SQLiteStore) DeleteSemesterEvent(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM semester_events WHERE user_id = ? AND id = ?`, userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete semester event: %w", err)
	}
	return requireRow(res, "semester event", id)
}

// CreateEvent persists a calendar event.
func (s *SQLiteStore) CreateEvent(ctx context.Context, ev *models.Event) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.CreatedAt == 0 {
		ev.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id, user_id, title, date, location, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.UserID, ev.Title, ev.Date, ev.Location, ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// ListEvents retrieves the user's calendar events, earliest first.
func (s *SQLiteStore) ListEvents(ctx context.Context, userID string) ([]*models.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, title, date, location, created_at
		 FROM events WHERE user_id = ? ORDER BY date, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		ev := &models.Event{}
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Title, &ev.Date, &ev.Location, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}

// UpdateEvent writes all of the event's mutable fields.
func (s *SQLiteStore) UpdateEvent(ctx context.Context, ev *models.Event) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE events SET title = ?, date = ?, location = ? WHERE user_id = ? AND id = ?`,
		ev.Title, ev.Date, ev.Location, ev.UserID, ev.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return requireRow(res, "event", ev.ID)
}

// DeleteEvent removes a calendar event.
func (s *SQLiteStore) DeleteEvent(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM events WHERE user_id = ? AND id = ?`, userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return requireRow(res, "event", id)
}
