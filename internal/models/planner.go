package models

// Task is a to-do item.
type Task struct {
	ID        string
	UserID    string
	Title     string
	Notes     string
	Done      bool
	DueDate   int64 // Unix timestamp; zero if unset
	CreatedAt int64
}

// Note is a free-form note.
type Note struct {
	ID        string
	UserID    string
	Title     string
	Body      string
	CreatedAt int64
	UpdatedAt int64
}

// SemesterConfig holds the active semester's boundaries. One row per user.
type SemesterConfig struct {
	UserID    string
	Name      string // e.g., "Fall 2026"
	StartDate string // "2006-01-02"
	EndDate   string // "2006-01-02"
	UpdatedAt int64
}

// TimetableEntry is a recurring weekly class slot.
type TimetableEntry struct {
	ID        string
	UserID    string
	Course    string
	Weekday   int    // 0 = Sunday ... 6 = Saturday
	StartTime string // "15:04"
	EndTime   string // "15:04"
	Location  string
	CreatedAt int64
}

// Assignment is a graded deliverable with a deadline.
type Assignment struct {
	ID        string
	UserID    string
	Course    string
	Title     string
	DueDate   int64 // Unix timestamp
	Done      bool
	CreatedAt int64
}

// Event is a one-off calendar entry (appointment, meetup, deadline).
type Event struct {
	ID        string
	UserID    string
	Title     string
	Date      int64 // Unix timestamp
	Location  string
	CreatedAt int64
}

// SemesterEvent is a dated entry on the semester calendar, such as a holiday,
// a break or a registration deadline. Dates are calendar days, matching the
// semester boundaries.
type SemesterEvent struct {
	ID        string
	UserID    string
	Title     string
	Date      string // "2006-01-02"
	CreatedAt int64
}

// Exam is a scheduled examination.
type Exam struct {
	ID        string
	UserID    string
	Course    string
	Title     string
	Date      int64 // Unix timestamp
	Location  string
	CreatedAt int64
}
