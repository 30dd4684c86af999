// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/planio-app/planio/internal/models"
)

// Store defines the interface for Planio's persistence operations. All
// resource reads and writes are scoped by the owning user ID. Lookup methods
// return (nil, nil) when the row does not exist so callers can distinguish a
// degraded read (deleted wallet, stale reference) from a storage failure and
// handle it explicitly.
//
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Wallets
	CreateWallet(ctx context.Context, wallet *models.Wallet) error
	CreateWallets(ctx context.Context, wallets []*models.Wallet) error
	GetWallet(ctx context.Context, userID, id string) (*models.Wallet, error)
	ListWallets(ctx context.Context, userID string) ([]*models.Wallet, error)
	UpdateWallet(ctx context.Context, wallet *models.Wallet) error
	DeleteWallet(ctx context.Context, userID, id string) error

	// Transactions. Create and Delete accept the wallets whose balances the
	// operation touched; the record and all balance updates are committed in
	// a single database transaction so a transfer is never observed
	// half-applied.
	CreateTransaction(ctx context.Context, t *models.Transaction, wallets ...*models.Wallet) error
	GetTransaction(ctx context.Context, userID, id string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, userID string) ([]*models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id string, wallets ...*models.Wallet) error

	// Shared expenses
	CreateSharedExpense(ctx context.Context, expense *models.SharedExpense) error
	GetSharedExpense(ctx context.Context, userID, id string) (*models.SharedExpense, error)
	ListSharedExpenses(ctx context.Context, userID string) ([]*models.SharedExpense, error)
	SetExpenseSettled(ctx context.Context, userID, id string, settled bool) error
	DeleteSharedExpense(ctx context.Context, userID, id string) error

	// Habits
	CreateHabit(ctx context.Context, habit *models.Habit) error
	GetHabit(ctx context.Context, userID, id string) (*models.Habit, error)
	ListHabits(ctx context.Context, userID string) ([]*models.Habit, error)
	UpdateHabit(ctx context.Context, habit *models.Habit) error
	ReplaceHabitCompletions(ctx context.Context, userID, id string, dates []string) error
	DeleteHabit(ctx context.Context, userID, id string) error

	// Debts
	CreateDebt(ctx context.Context, debt *models.Debt) error
	GetDebt(ctx context.Context, userID, id string) (*models.Debt, error)
	ListDebts(ctx context.Context, userID string) ([]*models.Debt, error)
	UpdateDebt(ctx context.Context, debt *models.Debt) error
	DeleteDebt(ctx context.Context, userID, id string) error

	// Tasks
	CreateTask(ctx context.Context, task *models.Task) error
	GetTask(ctx context.Context, userID, id string) (*models.Task, error)
	ListTasks(ctx context.Context, userID string) ([]*models.Task, error)
	UpdateTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, userID, id string) error

	// Notes
	CreateNote(ctx context.Context, note *models.Note) error
	GetNote(ctx context.Context, userID, id string) (*models.Note, error)
	ListNotes(ctx context.Context, userID string) ([]*models.Note, error)
	UpdateNote(ctx context.Context, note *models.Note) error
	DeleteNote(ctx context.Context, userID, id string) error

	// Semester planner
	UpsertSemesterConfig(ctx context.Context, cfg *models.SemesterConfig) error
	GetSemesterConfig(ctx context.Context, userID string) (*models.SemesterConfig, error)
	CreateTimetableEntry(ctx context.Context, entry *models.TimetableEntry) error
	ListTimetableEntries(ctx context.Context, userID string) ([]*models.TimetableEntry, error)
	DeleteTimetableEntry(ctx context.Context, userID, id string) error
	CreateAssignment(ctx context.Context, a *models.Assignment) error
	ListAssignments(ctx context.Context, userID string) ([]*models.Assignment, error)
	UpdateAssignment(ctx context.Context, a *models.Assignment) error
	DeleteAssignment(ctx context.Context, userID, id string) error
	CreateExam(ctx context.Context, exam *models.Exam) error
	ListExams(ctx context.Context, userID string) ([]*models.Exam, error)
	DeleteExam(ctx context.Context, userID, id string) error
	CreateSemesterEvent(ctx context.Context, ev *models.SemesterEvent) error
	ListSemesterEvents(ctx context.Context, userID string) ([]*models.SemesterEvent, error)
	UpdateSemesterEvent(ctx context.Context, ev *models.SemesterEvent) error
	DeleteSemesterEvent(ctx context.Context, userID, id string) error

	// Calendar events
	CreateEvent(ctx context.Context, ev *models.Event) error
	ListEvents(ctx context.Context, userID string) ([]*models.Event, error)
	UpdateEvent(ctx context.Context, ev *models.Event) error
	DeleteEvent(ctx context.Context, userID, id string) error

	// Close releases any resources held by the store.
	Close() error
}
