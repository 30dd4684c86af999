package models

import "github.com/shopspring/decimal"

// TransactionType carries the direction of a transaction; amounts are always
// stored non-negative.
type TransactionType string

const (
	TransactionIncome   TransactionType = "income"
	TransactionExpense  TransactionType = "expense"
	TransactionTransfer TransactionType = "transfer"
)

// Valid reports whether the type is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionIncome, TransactionExpense, TransactionTransfer:
		return true
	}
	return false
}

// Transaction is a single income/expense/transfer event.
//
// Income and expense transactions reference one wallet via WalletID. A transfer is a
// single record that debits FromWalletID and credits ToWalletID atomically.
// Transactions are never mutated in place; an edit is a delete followed by a recreate.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string

	// UserID is the owning user.
	UserID string

	// Title is the human-readable description.
	Title string

	// Type is income, expense or transfer.
	Type TransactionType

	// Amount is always non-negative; direction is carried by Type.
	Amount decimal.Decimal

	// WalletID references the affected wallet for income/expense. Empty for
	// transfers. The wallet may have been deleted since; readers must tolerate
	// orphaned references.
	WalletID string

	// FromWalletID and ToWalletID reference the debited and credited wallets
	// for transfers. Empty for income/expense.
	FromWalletID string
	ToWalletID   string

	// CreatedAt is the Unix timestamp when the transaction was recorded.
	CreatedAt int64
}
