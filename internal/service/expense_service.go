package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/planio-app/planio/internal/models"
	"github.com/planio-app/planio/internal/settlement"
	"github.com/planio-app/planio/internal/storage"
)

// ShareInput is one participant's share as supplied by the caller.
type ShareInput struct {
	ParticipantID string
	DisplayName   string
	Custom        bool
	Amount        decimal.Decimal // custom shares only
}

// SettlementTransfer is one payment in a settlement plan, with display names
// resolved for presentation.
type SettlementTransfer struct {
	FromID   string
	FromName string
	ToID     string
	ToName   string
	Amount   decimal.Decimal
}

// ExpenseService manages shared expenses and computes settlement plans.
type ExpenseService struct {
	store storage.Store
	opts  settlement.Options
}

// NewExpenseService creates a new ExpenseService with the given storage
// backend and solver options.
func NewExpenseService(store storage.Store, opts settlement.Options) *ExpenseService {
	return &ExpenseService{store: store, opts: opts}
}

// Create records a shared expense. Shares are expanded once here; they are
// fixed amounts from this point on and are never recomputed. The payer is a
// free-text identity and need not hold a share of their own: someone can cover
// a bill entirely consumed by others. When payerName is empty it is taken from
// the payer's share if present, falling back to the payer ID.
func (s *ExpenseService) Create(ctx context.Context, userID, description string, total decimal.Decimal, payerID, payerName string, shares []ShareInput) (*models.SharedExpense, error) {
	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: total must be positive", ErrInvalidInput)
	}
	if payerID == "" {
		return nil, fmt.Errorf("%w: payer id is required", ErrInvalidInput)
	}
	if len(shares) == 0 {
		return nil, fmt.Errorf("%w: at least one share is required", ErrInvalidInput)
	}
	for _, in := range shares {
		if in.ParticipantID == "" {
			return nil, fmt.Errorf("%w: participant id is required", ErrInvalidInput)
		}
		if payerName == "" && in.ParticipantID == payerID {
			payerName = in.DisplayName
		}
	}
	if payerName == "" {
		payerName = payerID
	}

	expanded, err := settlement.ExpandShares(toSolverExpense(total, payerID, shares), s.opts)
	if err != nil {
		return nil, err
	}

	expense := &models.SharedExpense{
		UserID:      userID,
		Description: description,
		Total:       total,
		PayerID:     payerID,
		PayerName:   payerName,
		Shares:      make([]models.ExpenseShare, len(shares)),
	}
	for i, in := range shares {
		mode := models.ShareEqual
		if in.Custom {
			mode = models.ShareCustom
		}
		expense.Shares[i] = models.ExpenseShare{
			ParticipantID: in.ParticipantID,
			DisplayName:   in.DisplayName,
			Mode:          mode,
			Amount:        expanded[in.ParticipantID],
		}
	}

	if err := s.store.CreateSharedExpense(ctx, expense); err != nil {
		slog.Error("CreateSharedExpense failed", "user_id", userID, "error", err)
		return nil, err
	}
	slog.Info("Shared expense recorded", "user_id", userID, "expense_id", expense.ID, "total", total)
	return expense, nil
}

// Get returns a single expense.
func (s *ExpenseService) Get(ctx context.Context, userID, id string) (*models.SharedExpense, error) {
	expense, err := s.store.GetSharedExpense(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrNotFound
	}
	return expense, nil
}

// List returns the user's expenses, newest first.
func (s *ExpenseService) List(ctx context.Context, userID string) ([]*models.SharedExpense, error) {
	expenses, err := s.store.ListSharedExpenses(ctx, userID)
	if err != nil {
		slog.Error("ListSharedExpenses failed", "user_id", userID, "error", err)
		return nil, err
	}
	return expenses, nil
}

// SetSettled marks an expense settled or unsettled. Shares are untouched.
func (s *ExpenseService) SetSettled(ctx context.Context, userID, id string, settled bool) error {
	if err := s.store.SetExpenseSettled(ctx, userID, id, settled); err != nil {
		return ErrNotFound
	}
	return nil
}

// Delete removes an expense and its shares.
func (s *ExpenseService) Delete(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteSharedExpense(ctx, userID, id); err != nil {
		return ErrNotFound
	}
	return nil
}

// Plan computes the settlement plan over the user's unsettled expenses:
// per-participant net balances and a minimal transfer list that discharges
// them. The plan is deterministic for a given expense history.
func (s *ExpenseService) Plan(ctx context.Context, userID string) ([]settlement.ParticipantBalance, []SettlementTransfer, error) {
	expenses, err := s.store.ListSharedExpenses(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	names := make(map[string]string)
	var solverExpenses []settlement.Expense
	// Oldest first so balance accumulation order is stable across reads.
	for i := len(expenses) - 1; i >= 0; i-- {
		e := expenses[i]
		if e.Settled {
			continue
		}
		names[e.PayerID] = e.PayerName
		shares := make([]settlement.Share, len(e.Shares))
		for j, sh := range e.Shares {
			names[sh.ParticipantID] = sh.DisplayName
			shares[j] = settlement.Share{
				ParticipantID: sh.ParticipantID,
				Custom:        true, // amounts are pre-expanded at creation
				Amount:        sh.Amount,
			}
		}
		solverExpenses = append(solverExpenses, settlement.Expense{
			Total:   e.Total,
			PayerID: e.PayerID,
			Shares:  shares,
		})
	}

	balances, transfers, err := settlement.Plan(solverExpenses, s.opts)
	if err != nil {
		return nil, nil, err
	}

	resolved := make([]SettlementTransfer, len(transfers))
	for i, t := range transfers {
		resolved[i] = SettlementTransfer{
			FromID:   t.FromID,
			FromName: names[t.FromID],
			ToID:     t.ToID,
			ToName:   names[t.ToID],
			Amount:   t.Amount,
		}
	}
	return balances, resolved, nil
}

func toSolverExpense(total decimal.Decimal, payerID string, shares []ShareInput) settlement.Expense {
	solverShares := make([]settlement.Share, len(shares))
	for i, in := range shares {
		solverShares[i] = settlement.Share{
			ParticipantID: in.ParticipantID,
			Custom:        in.Custom,
			Amount:        in.Amount,
		}
	}
	return settlement.Expense{Total: total, PayerID: payerID, Shares: solverShares}
}
