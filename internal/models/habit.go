package models

// Habit is a tracked daily habit.
//
// CompletedDates holds calendar days in "2006-01-02" form, unordered and without
// duplicates. The current streak is derived from the set on read and never persisted.
type Habit struct {
	// ID is the unique identifier for the habit (UUID format).
	ID string

	// UserID is the owning user.
	UserID string

	// Name is the display name (e.g., "Morning run").
	Name string

	// Category is a free-text grouping label.
	Category string

	// CompletedDates are the days the habit was marked complete, as
	// "2006-01-02" strings.
	CompletedDates []string

	// CreatedAt is the Unix timestamp when the habit was created.
	CreatedAt int64
}
