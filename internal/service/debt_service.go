package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/planio-app/planio/internal/models"
	"github.com/planio-app/planio/internal/storage"
)

// DebtService tracks money lent and borrowed. Status is derived from paid vs
// principal on read and never stored.
type DebtService struct {
	store storage.Store
}

// NewDebtService creates a new DebtService with the given storage backend.
func NewDebtService(store storage.Store) *DebtService {
	return &DebtService{store: store}
}

// Create records a new debt with nothing repaid yet.
func (s *DebtService) Create(ctx context.Context, userID string, direction models.DebtDirection, counterparty string, principal decimal.Decimal, loanDate, dueDate int64) (*models.Debt, error) {
	if !direction.Valid() {
		return nil, fmt.Errorf("%w: direction must be lent or borrowed", ErrInvalidInput)
	}
	if counterparty == "" {
		return nil, fmt.Errorf("%w: counterparty is required", ErrInvalidInput)
	}
	if !principal.IsPositive() {
		return nil, fmt.Errorf("%w: principal must be positive", ErrInvalidInput)
	}

	debt := &models.Debt{
		UserID:       userID,
		Direction:    direction,
		Counterparty: counterparty,
		Principal:    principal,
		Paid:         decimal.Zero,
		LoanDate:     loanDate,
		DueDate:      dueDate,
	}
	if err := s.store.CreateDebt(ctx, debt); err != nil {
		slog.Error("CreateDebt failed", "user_id", userID, "error", err)
		return nil, err
	}
	return debt, nil
}

// List returns the user's debts, newest loan first.
func (s *DebtService) List(ctx context.Context, userID string) ([]*models.Debt, error) {
	debts, err := s.store.ListDebts(ctx, userID)
	if err != nil {
		slog.Error("ListDebts failed", "user_id", userID, "error", err)
		return nil, err
	}
	return debts, nil
}

// RecordPayment adds a repayment to the debt. Overpayment is allowed; status
// caps at paid.
func (s *DebtService) RecordPayment(ctx context.Context, userID, id string, amount decimal.Decimal) (*models.Debt, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment must be positive", ErrInvalidInput)
	}

	debt, err := s.store.GetDebt(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if debt == nil {
		return nil, ErrNotFound
	}

	debt.Paid = debt.Paid.Add(amount)
	if err := s.store.UpdateDebt(ctx, debt); err != nil {
		slog.Error("UpdateDebt failed", "debt_id", id, "error", err)
		return nil, err
	}
	slog.Info("Debt payment recorded", "user_id", userID, "debt_id", id, "amount", amount, "status", debt.Status())
	return debt, nil
}

// Delete removes a debt.
func (s *DebtService) Delete(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteDebt(ctx, userID, id); err != nil {
		return ErrNotFound
	}
	return nil
}
