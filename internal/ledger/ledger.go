// Package ledger keeps wallet balances consistent with the transactions that
// reference them, using incremental apply/reverse instead of full recomputation.
//
// All functions are pure over their inputs; persistence and atomicity of the
// commit belong to the caller. Amounts are decimal so repeated apply/reverse
// cycles are exact.
package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/planio-app/planio/internal/models"
)

var (
	// ErrInvalidTransfer is the base error for all rejected transfers. The
	// concrete errors below wrap it so callers can match either the class or
	// the specific violated precondition.
	ErrInvalidTransfer = errors.New("invalid transfer")

	ErrSameWallet        = fmt.Errorf("%w: source and destination are the same wallet", ErrInvalidTransfer)
	ErrNonPositiveAmount = fmt.Errorf("%w: amount must be positive", ErrInvalidTransfer)
	ErrMissingWallet     = fmt.Errorf("%w: wallet reference missing", ErrInvalidTransfer)

	// ErrUnsupportedType rejects transactions whose type the ledger does not
	// know how to apply.
	ErrUnsupportedType = errors.New("unsupported transaction type")
)

// Apply adjusts the wallet balance for an income or expense transaction and
// returns the new balance. Overdraft is permitted; a negative result is not an
// error. Transfers must go through NewTransfer.
func Apply(w *models.Wallet, t models.Transaction) (decimal.Decimal, error) {
	if w == nil {
		return decimal.Zero, ErrMissingWallet
	}
	switch t.Type {
	case models.TransactionIncome:
		w.Balance = w.Balance.Add(t.Amount)
	case models.TransactionExpense:
		w.Balance = w.Balance.Sub(t.Amount)
	default:
		return w.Balance, fmt.Errorf("%w: %q", ErrUnsupportedType, t.Type)
	}
	return w.Balance, nil
}

// Reverse undoes the balance effect of a transaction; it is called when the
// transaction is deleted. A nil wallet means the wallet was deleted after the
// transaction was recorded; the reversal is a no-op so the delete still
// succeeds. For transfers, either side may be absent independently.
func Reverse(w *models.Wallet, t models.Transaction) {
	if w == nil {
		return
	}
	switch t.Type {
	case models.TransactionIncome:
		w.Balance = w.Balance.Sub(t.Amount)
	case models.TransactionExpense:
		w.Balance = w.Balance.Add(t.Amount)
	}
}

// ReverseTransfer undoes both sides of a transfer. Deleted wallets are skipped.
func ReverseTransfer(from, to *models.Wallet, t models.Transaction) {
	if from != nil {
		from.Balance = from.Balance.Add(t.Amount)
	}
	if to != nil {
		to.Balance = to.Balance.Sub(t.Amount)
	}
}

// NewTransfer validates and applies a transfer between two wallets, returning
// the transfer transaction record that references both. Validation happens
// before any mutation: on error neither balance has changed. The caller is
// responsible for committing both balances and the record in one persistence
// transaction so the transfer is never observed half-applied.
func NewTransfer(from, to *models.Wallet, amount decimal.Decimal, title string) (*models.Transaction, error) {
	if from == nil || to == nil {
		return nil, ErrMissingWallet
	}
	if from.ID == to.ID {
		return nil, ErrSameWallet
	}
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}

	from.Balance = from.Balance.Sub(amount)
	to.Balance = to.Balance.Add(amount)

	return &models.Transaction{
		UserID:       from.UserID,
		Title:        title,
		Type:         models.TransactionTransfer,
		Amount:       amount,
		FromWalletID: from.ID,
		ToWalletID:   to.ID,
	}, nil
}

// TotalBalance sums the balances of all wallets. Nil entries (degraded reads
// of deleted wallets) are skipped.
func TotalBalance(wallets []*models.Wallet) decimal.Decimal {
	total := decimal.Zero
	for _, w := range wallets {
		if w == nil {
			continue
		}
		total = total.Add(w.Balance)
	}
	return total
}
