// Package server exposes Planio's services over a JSON REST API.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/planio-app/planio/internal/auth"
	"github.com/planio-app/planio/internal/middleware"
	"github.com/planio-app/planio/internal/service"
)

// Server holds the service dependencies and builds the HTTP handler.
type Server struct {
	auth         *service.AuthService
	wallets      *service.WalletService
	transactions *service.TransactionService
	expenses     *service.ExpenseService
	habits       *service.HabitService
	debts        *service.DebtService
	planner      *service.PlannerService
	jwtManager   *auth.JWTManager
}

// New creates a server over the given services.
func New(
	authSvc *service.AuthService,
	walletSvc *service.WalletService,
	txSvc *service.TransactionService,
	expenseSvc *service.ExpenseService,
	habitSvc *service.HabitService,
	debtSvc *service.DebtService,
	plannerSvc *service.PlannerService,
	jwtManager *auth.JWTManager,
) *Server {
	return &Server{
		auth:         authSvc,
		wallets:      walletSvc,
		transactions: txSvc,
		expenses:     expenseSvc,
		habits:       habitSvc,
		debts:        debtSvc,
		planner:      plannerSvc,
		jwtManager:   jwtManager,
	}
}

// Handler assembles the route table. Everything under /api/ except the auth
// endpoints requires a valid bearer token.
func (s *Server) Handler() http.Handler {
	protected := http.NewServeMux()

	protected.HandleFunc("GET /api/auth/me", s.handleCurrentUser)

	protected.HandleFunc("GET /api/wallets", s.handleListWallets)
	protected.HandleFunc("POST /api/wallets", s.handleCreateWallet)
	protected.HandleFunc("PUT /api/wallets/{id}", s.handleUpdateWallet)
	protected.HandleFunc("DELETE /api/wallets/{id}", s.handleDeleteWallet)

	protected.HandleFunc("GET /api/transactions", s.handleListTransactions)
	protected.HandleFunc("POST /api/transactions", s.handleRecordTransaction)
	protected.HandleFunc("POST /api/transactions/transfer", s.handleTransfer)
	protected.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	protected.HandleFunc("GET /api/expenses", s.handleListExpenses)
	protected.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	protected.HandleFunc("GET /api/expenses/settlement", s.handleSettlementPlan)
	protected.HandleFunc("POST /api/expenses/{id}/settle", s.handleSettleExpense)
	protected.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	protected.HandleFunc("GET /api/habits", s.handleListHabits)
	protected.HandleFunc("POST /api/habits", s.handleCreateHabit)
	protected.HandleFunc("POST /api/habits/{id}/toggle", s.handleToggleHabit)
	protected.HandleFunc("PUT /api/habits/{id}", s.handleUpdateHabit)
	protected.HandleFunc("DELETE /api/habits/{id}", s.handleDeleteHabit)

	protected.HandleFunc("GET /api/debts", s.handleListDebts)
	protected.HandleFunc("POST /api/debts", s.handleCreateDebt)
	protected.HandleFunc("POST /api/debts/{id}/payments", s.handleDebtPayment)
	protected.HandleFunc("DELETE /api/debts/{id}", s.handleDeleteDebt)

	protected.HandleFunc("GET /api/tasks", s.handleListTasks)
	protected.HandleFunc("POST /api/tasks", s.handleCreateTask)
	protected.HandleFunc("PUT /api/tasks/{id}", s.handleUpdateTask)
	protected.HandleFunc("DELETE /api/tasks/{id}", s.handleDeleteTask)

	protected.HandleFunc("GET /api/notes", s.handleListNotes)
	protected.HandleFunc("POST /api/notes", s.handleCreateNote)
	protected.HandleFunc("PUT /api/notes/{id}", s.handleUpdateNote)
	protected.HandleFunc("DELETE /api/notes/{id}", s.handleDeleteNote)

	protected.HandleFunc("GET /api/semester", s.handleGetSemester)
	protected.HandleFunc("PUT /api/semester", s.handleSetSemester)
	protected.HandleFunc("GET /api/timetable", s.handleListTimetable)
	protected.HandleFunc("POST /api/timetable", s.handleAddTimetableEntry)
	protected.HandleFunc("DELETE /api/timetable/{id}", s.handleDeleteTimetableEntry)
	protected.HandleFunc("GET /api/assignments", s.handleListAssignments)
	protected.HandleFunc("POST /api/assignments", s.handleAddAssignment)
	protected.HandleFunc("PATCH /api/assignments/{id}", s.handleSetAssignmentDone)
	protected.HandleFunc("DELETE /api/assignments/{id}", s.handleDeleteAssignment)
	protected.HandleFunc("GET /api/exams", s.handleListExams)
	protected.HandleFunc("POST /api/exams", s.handleAddExam)
	protected.HandleFunc("DELETE /api/exams/{id}", s.handleDeleteExam)
	protected.HandleFunc("GET /api/semester/events", s.handleListSemesterEvents)
	protected.HandleFunc("POST /api/semester/events", s.handleAddSemesterEvent)
	protected.HandleFunc("PUT /api/semester/events/{id}", s.handleUpdateSemesterEvent)
	protected.HandleFunc("DELETE /api/semester/events/{id}", s.handleDeleteSemesterEvent)

	protected.HandleFunc("GET /api/events", s.handleListEvents)
	protected.HandleFunc("POST /api/events", s.handleAddEvent)
	protected.HandleFunc("PUT /api/events/{id}", s.handleUpdateEvent)
	protected.HandleFunc("DELETE /api/events/{id}", s.handleDeleteEvent)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.Handle("/api/", middleware.RequireAuth(s.jwtManager, protected))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return mux
}
