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

// HabitStatus is a habit with its derived streak information.
type HabitStatus struct {
	Habit         *models.Habit
	Streak        int
	DoneToday     bool
	DoneYesterday bool
}

// HabitService manages habits and their daily completion toggles. Streaks are
// derived from the completion set on every read and never persisted.
type HabitService struct {
	store storage.Store
	now   func() time.Time
}

// NewHabitService creates a new HabitService with the given storage backend.
func NewHabitService(store storage.Store) *HabitService {
	return &HabitService{store: store, now: time.Now}
}

// Create adds a habit with an empty completion history.
func (s *HabitService) Create(ctx context.Context, userID, name, category string) (*models.Habit, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: habit name is required", ErrInvalidInput)
	}

	habit := &models.Habit{
		UserID:   userID,
		Name:     name,
		Category: category,
	}
	if err := s.store.CreateHabit(ctx, habit); err != nil {
		slog.Error("CreateHabit failed", "user_id", userID, "error", err)
		return nil, err
	}
	return habit, nil
}

// List returns the user's habits with streaks computed against today.
func (s *HabitService) List(ctx context.Context, userID string) ([]HabitStatus, error) {
	habits, err := s.store.ListHabits(ctx, userID)
	if err != nil {
		slog.Error("ListHabits failed", "user_id", userID, "error", err)
		return nil, err
	}

	today := s.now()
	statuses := make([]HabitStatus, len(habits))
	for i, h := range habits {
		statuses[i] = s.status(h, today)
	}
	return statuses, nil
}

// Get returns a single habit with its derived streak.
func (s *HabitService) Get(ctx context.Context, userID, id string) (HabitStatus, error) {
	habit, err := s.store.GetHabit(ctx, userID, id)
	if err != nil {
		return HabitStatus{}, err
	}
	if habit == nil {
		return HabitStatus{}, ErrNotFound
	}
	return s.status(habit, s.now()), nil
}

// ToggleToday flips today's completion for the habit. Toggling twice restores
// the original completion set.
func (s *HabitService) ToggleToday(ctx context.Context, userID, id string) (HabitStatus, error) {
	habit, err := s.store.GetHabit(ctx, userID, id)
	if err != nil {
		return HabitStatus{}, err
	}
	if habit == nil {
		return HabitStatus{}, ErrNotFound
	}

	today := s.now()
	habit.CompletedDates = streak.Toggle(habit.CompletedDates, today)
	if err := s.store.ReplaceHabitCompletions(ctx, userID, id, habit.CompletedDates); err != nil {
		slog.Error("ReplaceHabitCompletions failed", "habit_id", id, "error", err)
		return HabitStatus{}, err
	}
	return s.status(habit, today), nil
}

// Rename updates the habit's name and category.
func (s *HabitService) Rename(ctx context.Context, userID, id, name, category string) (*models.Habit, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: habit name is required", ErrInvalidInput)
	}

	habit, err := s.store.GetHabit(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if habit == nil {
		return nil, ErrNotFound
	}

	habit.Name = name
	habit.Category = category
	if err := s.store.UpdateHabit(ctx, habit); err != nil {
		slog.Error("UpdateHabit failed", "habit_id", id, "error", err)
		return nil, err
	}
	return habit, nil
}

// Delete removes a habit and its completion history.
func (s *HabitService) Delete(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteHabit(ctx, userID, id); err != nil {
		return ErrNotFound
	}
	return nil
}

func (s *HabitService) status(habit *models.Habit, today time.Time) HabitStatus {
	return HabitStatus{
		Habit:         habit,
		Streak:        streak.Current(habit.CompletedDates, today),
		DoneToday:     streak.Completed(habit.CompletedDates, today),
		DoneYesterday: streak.Completed(habit.CompletedDates, today.AddDate(0, 0, -1)),
	}
}
