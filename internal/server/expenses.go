package server

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/planio-app/planio/internal/middleware"
	"github.com/planio-app/planio/internal/models"
	"github.com/planio-app/planio/internal/service"
)

type shareRequest struct {
	ParticipantID string          `json:"participant_id"`
	DisplayName   string          `json:"display_name"`
	Custom        bool            `json:"custom"`
	Amount        decimal.Decimal `json:"amount"`
}

type expenseRequest struct {
	Description string          `json:"description"`
	Total       decimal.Decimal `json:"total"`
	PayerID     string          `json:"payer_id"`
	PayerName   string          `json:"payer_name"`
	Shares      []shareRequest  `json:"shares"`
}

type shareResponse struct {
	ParticipantID string          `json:"participant_id"`
	DisplayName   string          `json:"display_name"`
	Mode          string          `json:"mode"`
	Amount        decimal.Decimal `json:"amount"`
}

type expenseResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Total       decimal.Decimal `json:"total"`
	PayerID     string          `json:"payer_id"`
	PayerName   string          `json:"payer_name"`
	Shares      []shareResponse `json:"shares"`
	Settled     bool            `json:"settled"`
	CreatedAt   int64           `json:"created_at"`
}

type settleRequest struct {
	Settled bool `json:"settled"`
}

type balanceResponse struct {
	ParticipantID string          `json:"participant_id"`
	Net           decimal.Decimal `json:"net"`
}

type settlementTransferResponse struct {
	FromID   string          `json:"from_id"`
	FromName string          `json:"from_name"`
	ToID     string          `json:"to_id"`
	ToName   string          `json:"to_name"`
	Amount   decimal.Decimal `json:"amount"`
}

type settlementPlanResponse struct {
	Balances  []balanceResponse            `json:"balances"`
	Transfers []settlementTransferResponse `json:"transfers"`
}

func toExpenseResponse(e *models.SharedExpense) expenseResponse {
	resp := expenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Total:       e.Total,
		PayerID:     e.PayerID,
		PayerName:   e.PayerName,
		Shares:      make([]shareResponse, len(e.Shares)),
		Settled:     e.Settled,
		CreatedAt:   e.CreatedAt,
	}
	for i, sh := range e.Shares {
		resp.Shares[i] = shareResponse{
			ParticipantID: sh.ParticipantID,
			DisplayName:   sh.DisplayName,
			Mode:          string(sh.Mode),
			Amount:        sh.Amount,
		}
	}
	return resp
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	expenses, err := s.expenses.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toExpenseResponse(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	shares := make([]service.ShareInput, len(req.Shares))
	for i, sh := range req.Shares {
		shares[i] = service.ShareInput{
			ParticipantID: sh.ParticipantID,
			DisplayName:   sh.DisplayName,
			Custom:        sh.Custom,
			Amount:        sh.Amount,
		}
	}

	userID := middleware.GetUserID(r.Context())
	expense, err := s.expenses.Create(r.Context(), userID, req.Description, req.Total, req.PayerID, req.PayerName, shares)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

func (s *Server) handleSettlementPlan(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	balances, transfers, err := s.expenses.Plan(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := settlementPlanResponse{
		Balances:  make([]balanceResponse, len(balances)),
		Transfers: make([]settlementTransferResponse, len(transfers)),
	}
	for i, b := range balances {
		resp.Balances[i] = balanceResponse{ParticipantID: b.ParticipantID, Net: b.Net}
	}
	for i, t := range transfers {
		resp.Transfers[i] = settlementTransferResponse{
			FromID:   t.FromID,
			FromName: t.FromName,
			ToID:     t.ToID,
			ToName:   t.ToName,
			Amount:   t.Amount,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSettleExpense(w http.ResponseWriter, r *http.Request) {
	var req settleRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := s.expenses.SetSettled(r.Context(), userID, r.PathValue("id"), req.Settled); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if err := s.expenses.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
