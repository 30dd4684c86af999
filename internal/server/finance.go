package server

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/planio-app/planio/internal/middleware"
	"github.com/planio-app/planio/internal/models"
)

type walletRequest struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Balance  decimal.Decimal `json:"balance"`
}

type walletResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt int64           `json:"created_at"`
}

type walletListResponse struct {
	Wallets []walletResponse `json:"wallets"`
	Total   decimal.Decimal  `json:"total"`
}

func toWalletResponse(w *models.Wallet) walletResponse {
	return walletResponse{
		ID:        w.ID,
		Name:      w.Name,
		Category:  string(w.Category),
		Balance:   w.Balance,
		CreatedAt: w.CreatedAt,
	}
}

func (s *Server) handleListWallets(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	wallets, total, err := s.wallets.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := walletListResponse{Wallets: make([]walletResponse, len(wallets)), Total: total}
	for i, wallet := range wallets {
		resp.Wallets[i] = toWalletResponse(wallet)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateWallet(w http.ResponseWriter, r *http.Request) {
	var req walletRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	userID := middleware.GetUserID(r.Context())
	wallet, err := s.wallets.Create(r.Context(), userID, req.Name, models.WalletCategory(req.Category), req.Balance)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWalletResponse(wallet))
}

func (s *Server) handleUpdateWallet(w http.ResponseWriter, r *http.Request) {
	var req walletRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	userID := middleware.GetUserID(r.Context())
	wallet, err := s.wallets.Rename(r.Context(), userID, r.PathValue("id"), req.Name, models.WalletCategory(req.Category))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWalletResponse(wallet))
}

func (s *Server) handleDeleteWallet(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if err := s.wallets.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type transactionRequest struct {
	Title    string          `json:"title"`
	Type     string          `json:"type"`
	Amount   decimal.Decimal `json:"amount"`
	WalletID string          `json:"wallet_id"`
}

type transferRequest struct {
	Title        string          `json:"title"`
	Amount       decimal.Decimal `json:"amount"`
	FromWalletID string          `json:"from_wallet_id"`
	ToWalletID   string          `json:"to_wallet_id"`
}

type transactionResponse struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	WalletID     string          `json:"wallet_id,omitempty"`
	FromWalletID string          `json:"from_wallet_id,omitempty"`
	ToWalletID   string          `json:"to_wallet_id,omitempty"`
	CreatedAt    int64           `json:"created_at"`
}

func toTransactionResponse(t *models.Transaction) transactionResponse {
	return transactionResponse{
		ID:           t.ID,
		Title:        t.Title,
		Type:         string(t.Type),
		Amount:       t.Amount,
		WalletID:     t.WalletID,
		FromWalletID: t.FromWalletID,
		ToWalletID:   t.ToWalletID,
		CreatedAt:    t.CreatedAt,
	}
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	txs, err := s.transactions.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]transactionResponse, len(txs))
	for i, t := range txs {
		resp[i] = toTransactionResponse(t)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRecordTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	userID := middleware.GetUserID(r.Context())
	tx, err := s.transactions.Record(r.Context(), userID, req.WalletID, req.Title, models.TransactionType(req.Type), req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	userID := middleware.GetUserID(r.Context())
	tx, err := s.transactions.Transfer(r.Context(), userID, req.FromWalletID, req.ToWalletID, req.Title, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if err := s.transactions.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
