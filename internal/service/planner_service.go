package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/planio-app/planio/internal/models"
	"github.com/planio-app/planio/internal/storage"
	"github.com/planio-app/planio/internal/streak"
)

// PlannerService manages tasks, notes and the semester schedule.
type PlannerService struct {
	store storage.Store
}

// NewPlannerService creates a new PlannerService with the given storage
// backend.
func NewPlannerService(store storage.Store) *PlannerService {
	return &PlannerService{store: store}
}

// CreateTask adds a to-do item. DueDate of zero means no deadline.
func (s *PlannerService) CreateTask(ctx context.Context, userID, title, notes string, dueDate int64) (*models.Task, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: task title is required", ErrInvalidInput)
	}
	task := &models.Task{UserID: userID, Title: title, Notes: notes, DueDate: dueDate}
	if err := s.store.CreateTask(ctx, task); err != nil {
		slog.Error("CreateTask failed", "user_id", userID, "error", err)
		return nil, err
	}
	return task, nil
}

// ListTasks returns the user's tasks, due soonest first.
func (s *PlannerService) ListTasks(ctx context.Context, userID string) ([]*models.Task, error) {
	return s.store.ListTasks(ctx, userID)
}

// UpdateTask writes the task's title, notes, done flag and due date.
func (s *PlannerService) UpdateTask(ctx context.Context, userID, id, title, notes string, done bool, dueDate int64) (*models.Task, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: task title is required", ErrInvalidInput)
	}
	task, err := s.store.GetTask(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}

	task.Title = title
	task.Notes = notes
	task.Done = done
	task.DueDate = dueDate
	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task.
func (s *PlannerService) DeleteTask(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteTask(ctx, userID, id); err != nil {
		return ErrNotFound
	}
	return nil
}

// CreateNote adds a note.
func (s *PlannerService) CreateNote(ctx context.Context, userID, title, body string) (*models.Note, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: note title is required", ErrInvalidInput)
	}
	note := &models.Note{UserID: userID, Title: title, Body: body}
	if err := s.store.CreateNote(ctx, note); err != nil {
		slog.Error("CreateNote failed", "user_id", userID, "error", err)
		return nil, err
	}
	return note, nil
}

// ListNotes returns the user's notes, most recently updated first.
func (s *PlannerService) ListNotes(ctx context.Context, userID string) ([]*models.Note, error) {
	return s.store.ListNotes(ctx, userID)
}

// UpdateNote writes the note's title and body.
func (s *PlannerService) UpdateNote(ctx context.Context, userID, id, title, body string) (*models.Note, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: note title is required", ErrInvalidInput)
	}
	note, err := s.store.GetNote(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNotFound
	}

	note.Title = title
	note.Body = body
	if err := s.store.UpdateNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// DeleteNote removes a note.
func (s *PlannerService) DeleteNote(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteNote(ctx, userID, id); err != nil {
		return ErrNotFound
	}
	return nil
}

// SetSemester replaces the user's semester configuration. Dates are calendar
// days in YYYY-MM-DD form and the end must not precede the start.
func (s *PlannerService) SetSemester(ctx context.Context, userID, name, startDate, endDate string) (*models.SemesterConfig, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: semester name is required", ErrInvalidInput)
	}
	start, err := time.Parse(streak.DayFormat, startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad start date %q", ErrInvalidInput, startDate)
	}
	end, err := time.Parse(streak.DayFormat, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad end date %q", ErrInvalidInput, endDate)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: semester ends before it starts", ErrInvalidInput)
	}

	cfg := &models.SemesterConfig{UserID: userID, Name: name, StartDate: startDate, EndDate: endDate}
	if err := s.store.UpsertSemesterConfig(ctx, cfg); err != nil {
		slog.Error("UpsertSemesterConfig failed", "user_id", userID, "error", err)
		return nil, err
	}
	return cfg, nil
}

// GetSemester returns the user's semester configuration, or ErrNotFound if
// none has been set.
func (s *PlannerService) GetSemester(ctx context.Context, userID string) (*models.SemesterConfig, error) {
	cfg, err := s.store.GetSemesterConfig(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, ErrNotFound
	}
	return cfg, nil
}

// AddTimetableEntry adds a weekly class slot.
func (s *PlannerService) AddTimetableEntry(ctx context.Context, userID, course string, weekday int, startTime, endTime, location string) (*models.TimetableEntry, error) {
	if course == "" {
		return nil, fmt.Errorf("%w: course is required", ErrInvalidInput)
	}
	if weekday < 0 || weekday > 6 {
		return nil, fmt.Errorf("%w: weekday must be 0 through 6", ErrInvalidInput)
	}
	if _, err := time.Parse("15:04", startTime); err != nil {
		return nil, fmt.Errorf("%w: bad start time %q", ErrInvalidInput, startTime)
	}
	if _, err := time.Parse("15:04", endTime); err != nil {
		return nil, fmt.Errorf("%w: bad end time %q", ErrInvalidInput, endTime)
	}

	entry := &models.TimetableEntry{
		UserID:    userID,
		Course:    course,
		Weekday:   weekday,
		StartTime: startTime,
		EndTime:   endTime,
		Location:  location,
	}
	if err := s.store.CreateTimetableEntry(ctx, entry); err != nil {
		slog.Error("CreateTimetableEntry failed", "user_id", userID, "error", err)
		return nil, err
	}
	return entry, nil
}

// ListTimetable returns the weekly timetable ordered by weekday and start
// time.
func (s *PlannerService) ListTimetable(ctx context.Context, userID string) ([]*models.TimetableEntry, error) {
	return s.store.ListTimetableEntries(ctx, userID)
}

// DeleteTimetableEntry removes a class slot.
func (s *PlannerService) DeleteTimetableEntry(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteTimetableEntry(ctx, userID, id); err != nil {
		return ErrNotFound
	}
	return nil
}

// AddAssignment records a graded deliverable.
func (s *PlannerService) AddAssignment(ctx context.Context, userID, course, title string, dueDate int64) (*models.Assignment, error) {
	if course == "" || title == "" {
		return nil, fmt.Errorf("%w: course and title are required", ErrInvalidInput)
	}
	a := &models.Assignment{UserID: userID, Course: course, Title: title, DueDate: dueDate}
	if err := s.store.CreateAssignment(ctx, a); err != nil {
		slog.Error("CreateAssignment failed", "user_id", userID, "error", err)
		return nil, err
	}
	return a, nil
}

// ListAssignments returns assignments, due soonest first.
func (s *PlannerService) ListAssignments(ctx context.Context, userID string) ([]*models.Assignment, error) {
	return s.store.ListAssignments(ctx, userID)
}

// SetAssignmentDone flips the done flag on an assignment.
func (s *PlannerService) SetAssignmentDone(ctx context.Context, userID, id string, done bool) (*models.Assignment, error) {
	assignments, err := s.store.ListAssignments(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, a := range assignments {
		if a.ID == id {
			a.Done = done
			if err := s.store.UpdateAssignment(ctx, a); err != nil {
				return nil, err
			}
			return a, nil
		}
	}
	return nil, ErrNotFound
}

// DeleteAssignment removes an assignment.
func (s *PlannerService) DeleteAssignment(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteAssignment(ctx, userID, id); err != nil {
		return ErrNotFound
	}
	return nil
}

// AddExam records a scheduled exam.
func (s *PlannerService) AddExam(ctx context.Context, userID, course, title string, date int64, location string) (*models.Exam, error) {
	if course == "" || title == "" {
		return nil, fmt.Errorf("%w: course and title are required", ErrInvalidInput)
	}
	if date == 0 {
		return nil, fmt.Errorf("%w: exam date is required", ErrInvalidInput)
	}
	exam := &models.Exam{UserID: userID, Course: course, Title: title, Date: date, Location: location}
	if err := s.store.CreateExam(ctx, exam); err != nil {
		slog.Error("CreateExam failed", "user_id", userID, "error", err)
		return nil, err
	}
	return exam, nil
}

// ListExams returns exams, earliest first.
func (s *PlannerService) ListExams(ctx context.Context, userID string) ([]*models.Exam, error) {
	return s.store.ListExams(ctx, userID)
}

// DeleteExam removes an exam.
func (s *PlannerService) DeleteExam(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteExam(ctx, userID, id); err != nil {
		return ErrNotFound
	}
	return nil
}

// AddSemesterEvent records a dated entry on the semester calendar.
func (s *PlannerService) AddSemesterEvent(ctx context.Context, userID, title, date string) (*models.SemesterEvent, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: event title is required", ErrInvalidInput)
	}
	if _, err := time.Parse(streak.DayFormat, date); err != nil {
		return nil, fmt.Errorf("%w: bad event date %q", ErrInvalidInput, date)
	}
	ev := &models.SemesterEvent{UserID: userID, Title: title, Date: date}
	if err := s.store.CreateSemesterEvent(ctx, ev); err != nil {
		slog.Error("CreateSemesterEvent failed", "user_id", userID, "error", err)
		return nil, err
	}
	return ev, nil
}

// ListSemesterEvents returns the semester calendar, earliest day first.
func (s *PlannerService) ListSemesterEvents(ctx context.Context, userID string) ([]*models.SemesterEvent, error) {
	return s.store.ListSemesterEvents(ctx, userID)
}

// UpdateSemesterEvent writes the event's title and date.
func (s *PlannerService) UpdateSemesterEvent(ctx context.Context, userID, id, title, date string) (*models.SemesterEvent, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: event title is required", ErrInvalidInput)
	}
	if _, err := time.Parse(streak.DayFormat, date); err != nil {
		return nil, fmt.Errorf("%w: bad event date %q", ErrInvalidInput, date)
	}
	events, err := s.store.ListSemesterEvents(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, ev := range events {
		if ev.ID == id {
			ev.Title = title
			ev.Date = date
			if err := s.store.UpdateSemesterEvent(ctx, ev); err != nil {
				return nil, err
			}
			return ev, nil
		}
	}
	return nil, ErrNotFound
}

// DeleteSemesterEvent removes a semester calendar entry.
func (s *PlannerService) DeleteSemesterEvent(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteSemesterEvent(ctx, userID, id); err != nil {
		return ErrNotFound
	}
	return nil
}

// AddEvent records a one-off calendar event.
func (s *PlannerService) AddEvent(ctx context.Context, userID, title string, date int64, location string) (*models.Event, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: event title is required", ErrInvalidInput)
	}
	if date == 0 {
		return nil, fmt.Errorf("%w: event date is required", ErrInvalidInput)
	}
	ev := &models.Event{UserID: userID, Title: title, Date: date, Location: location}
	if err := s.store.CreateEvent(ctx, ev); err != nil {
		slog.Error("CreateEvent failed", "user_id", userID, "error", err)
		return nil, err
	}
	return ev, nil
}

// ListEvents returns calendar events, earliest first.
func (s *PlannerService) ListEvents(ctx context.Context, userID string) ([]*models.Event, error) {
	return s.store.ListEvents(ctx, userID)
}

// UpdateEvent writes the event's title, date and location.
func (s *PlannerService) UpdateEvent(ctx context.Context, userID, id, title string, date int64, location string) (*models.Event, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: event title is required", ErrInvalidInput)
	}
	if date == 0 {
		return nil, fmt.Errorf("%w: event date is required", ErrInvalidInput)
	}
	events, err := s.store.ListEvents(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, ev := range events {
		if ev.ID == id {
			ev.Title = title
			ev.Date = date
			ev.Location = location
			if err := s.store.UpdateEvent(ctx, ev); err != nil {
				return nil, err
			}
			return ev, nil
		}
	}
	return nil, ErrNotFound
}

// DeleteEvent removes a calendar event.
func (s *PlannerService) DeleteEvent(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteEvent(ctx, userID, id); err != nil {
		return ErrNotFound
	}
	return nil
}
