package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/planio-app/planio/internal/models"
)

// UpsertSemesterConfig writes the user's single semester configuration,
// replacing any existing one.
func (s *SQLiteStore) UpsertSemesterConfig(ctx context.Context, cfg *models.SemesterConfig) error {
	cfg.UpdatedAt = time.Now().Unix()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO semester_config (user_id, name, start_date, end_date, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   name = excluded.name,
		   start_date = excluded.start_date,
		   end_date = excluded.end_date,
		   updated_at = excluded.updated_at`,
		cfg.UserID, cfg.Name, cfg.StartDate, cfg.EndDate, cfg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert semester config: %w", err)
	}
	return nil
}

// GetSemesterConfig retrieves the user's semester configuration.
// Returns (nil, nil) if none has been set.
func (s *SQLiteStore) GetSemesterConfig(ctx context.Context, userID string) (*models.SemesterConfig, error) {
	cfg := &models.SemesterConfig{}
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, name, start_date, end_date, updated_at
		 FROM semester_config WHERE user_id = ?`,
		userID,
	).Scan(&cfg.UserID, &cfg.Name, &cfg.StartDate, &cfg.EndDate, &cfg.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get semester config: %w", err)
	}
	return cfg, nil
}

// CreateTimetableEntry persists a recurring weekly class slot.
func (s *SQLiteStore) CreateTimetableEntry(ctx context.Context, entry *models.TimetableEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO timetable_entries (id, user_id, course, weekday, start_time, end_time, location, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.Course, entry.Weekday,
		entry.StartTime, entry.EndTime, entry.Location, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert timetable entry: %w", err)
	}
	return nil
}

// ListTimetableEntries retrieves the user's weekly timetable ordered by
// weekday then start time.
func (s *SQLiteStore) ListTimetableEntries(ctx context.Context, userID string) ([]*models.TimetableEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, course, weekday, start_time, end_time, location, created_at
		 FROM timetable_entries WHERE user_id = ? ORDER BY weekday, start_time, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list timetable entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.TimetableEntry
	for rows.Next() {
		entry := &models.TimetableEntry{}
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Course, &entry.Weekday,
			&entry.StartTime, &entry.EndTime, &entry.Location, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan timetable entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate timetable entries: %w", err)
	}
	return entries, nil
}

// DeleteTimetableEntry removes a timetable entry.
func (s *SQLiteStore) DeleteTimetableEntry(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM timetable_entries WHERE user_id = ? AND id = ?`, userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete timetable entry: %w", err)
	}
	return requireRow(res, "timetable entry", id)
}

// CreateAssignment persists a new assignment.
func (s *SQLiteStore) CreateAssignment(ctx context.Context, a *models.Assignment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt == 0 {
		a.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assignments (id, user_id, course, title, due_date, done, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.Course, a.Title, a.DueDate, boolToInt(a.Done), a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert assignment: %w", err)
	}
	return nil
}

// ListAssignments retrieves all assignments for a user, soonest due first.
func (s *SQLiteStore) ListAssignments(ctx context.Context, userID string) ([]*models.Assignment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, course, title, due_date, done, created_at
		 FROM assignments WHERE user_id = ? ORDER BY due_date, created_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*models.Assignment
	for rows.Next() {
		a := &models.Assignment{}
		var done int
		if err := rows.Scan(&a.ID, &a.UserID, &a.Course, &a.Title, &a.DueDate, &done, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.Done = done != 0
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}
	return assignments, nil
}

// UpdateAssignment writes all of the assignment's mutable fields.
func (s *SQLiteStore) UpdateAssignment(ctx context.Context, a *models.Assignment) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE assignments SET course = ?, title = ?, due_date = ?, done = ? WHERE user_id = ? AND id = ?`,
		a.Course, a.Title, a.DueDate, boolToInt(a.Done), a.UserID, a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	return requireRow(res, "assignment", a.ID)
}

// DeleteAssignment removes an assignment.
func (s *SQLiteStore) DeleteAssignment(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM assignments WHERE user_id = ? AND id = ?`, userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return requireRow(res, "assignment", id)
}

// CreateExam persists a new exam.
func (s *SQLiteStore) CreateExam(ctx context.Context, exam *models.Exam) error {
	if exam.ID == "" {
		exam.ID = uuid.New().String()
	}
	if exam.CreatedAt == 0 {
		exam.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exams (id, user_id, course, title, date, location, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		exam.ID, exam.UserID, exam.Course, exam.Title, exam.Date, exam.Location, exam.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert exam: %w", err)
	}
	return nil
}

// ListExams retrieves all exams for a user, earliest first.
func (s *SQLiteStore) ListExams(ctx context.Context, userID string) ([]*models.Exam, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, course, title, date, location, created_at
		 FROM exams WHERE user_id = ? ORDER BY date, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}
	defer rows.Close()

	var exams []*models.Exam
	for rows.Next() {
		exam := &models.Exam{}
		if err := rows.Scan(&exam.ID, &exam.UserID, &exam.Course, &exam.Title,
			&exam.Date, &exam.Location, &exam.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan exam: %w", err)
		}
		exams = append(exams, exam)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exams: %w", err)
	}
	return exams, nil
}

// DeleteExam removes an exam.
func (s *SQLiteStore) DeleteExam(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM exams WHERE user_id = ? AND id = ?`, userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete exam: %w", err)
	}
	return requireRow(res, "exam", id)
}
