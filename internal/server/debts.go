package server

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/planio-app/planio/internal/middleware"
	"github.com/planio-app/planio/internal/models"
)

type debtRequest struct {
	Direction    string          `json:"direction"`
	Counterparty string          `json:"counterparty"`
	Principal    decimal.Decimal `json:"principal"`
	LoanDate     int64           `json:"loan_date"`
	DueDate      int64           `json:"due_date"`
}

type debtPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type debtResponse struct {
	ID           string          `json:"id"`
	Direction    string          `json:"direction"`
	Counterparty string          `json:"counterparty"`
	Principal    decimal.Decimal `json:"principal"`
	Paid         decimal.Decimal `json:"paid"`
	Remaining    decimal.Decimal `json:"remaining"`
	Status       string          `json:"status"`
	LoanDate     int64           `json:"loan_date"`
	DueDate      int64           `json:"due_date,omitempty"`
	CreatedAt    int64           `json:"created_at"`
}

func toDebtResponse(d *models.Debt) debtResponse {
	return debtResponse{
		ID:           d.ID,
		Direction:    string(d.Direction),
		Counterparty: d.Counterparty,
		Principal:    d.Principal,
		Paid:         d.Paid,
		Remaining:    d.Remaining(),
		Status:       string(d.Status()),
		LoanDate:     d.LoanDate,
		DueDate:      d.DueDate,
		CreatedAt:    d.CreatedAt,
	}
}

func (s *Server) handleListDebts(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	debts, err := s.debts.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]debtResponse, len(debts))
	for i, d := range debts {
		resp[i] = toDebtResponse(d)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateDebt(w http.ResponseWriter, r *http.Request) {
	var req debtRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	userID := middleware.GetUserID(r.Context())
	debt, err := s.debts.Create(r.Context(), userID, models.DebtDirection(req.Direction), req.Counterparty, req.Principal, req.LoanDate, req.DueDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDebtResponse(debt))
}

func (s *Server) handleDebtPayment(w http.ResponseWriter, r *http.Request) {
	var req debtPaymentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	userID := middleware.GetUserID(r.Context())
	debt, err := s.debts.RecordPayment(r.Context(), userID, r.PathValue("id"), req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDebtResponse(debt))
}

func (s *Server) handleDeleteDebt(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if err := s.debts.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
