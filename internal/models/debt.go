package models

import "github.com/shopspring/decimal"

// DebtDirection says which way the money went.
type DebtDirection string

const (
	DebtLent     DebtDirection = "lent"
	DebtBorrowed DebtDirection = "borrowed"
)

// Valid reports whether the direction is lent or borrowed.
func (d DebtDirection) Valid() bool {
	return d == DebtLent || d == DebtBorrowed
}

// DebtStatus is derived from paid vs principal; it is never stored.
type DebtStatus string

const (
	DebtPending DebtStatus = "pending"
	DebtPartial DebtStatus = "partial"
	DebtPaid    DebtStatus = "paid"
)

// Debt tracks money lent to or borrowed from a counterparty.
type Debt struct {
	// ID is the unique identifier for the debt (UUID format).
	ID string

	// UserID is the owning user.
	UserID string

	// Direction is lent or borrowed.
	Direction DebtDirection

	// Counterparty is the other party's name.
	Counterparty string

	// Principal is the original amount.
	Principal decimal.Decimal

	// Paid is the amount repaid so far.
	Paid decimal.Decimal

	// LoanDate is the Unix timestamp of the loan.
	LoanDate int64

	// DueDate is the optional Unix timestamp the debt is due; zero if unset.
	DueDate int64

	// CreatedAt is the Unix timestamp when the debt was recorded.
	CreatedAt int64
}

// Status derives the repayment status from paid vs principal.
func (d *Debt) Status() DebtStatus {
	switch {
	case d.Paid.GreaterThanOrEqual(d.Principal):
		return DebtPaid
	case d.Paid.IsPositive():
		return DebtPartial
	default:
		return DebtPending
	}
}

// Remaining returns the unpaid portion, never negative.
func (d *Debt) Remaining() decimal.Decimal {
	rem := d.Principal.Sub(d.Paid)
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}
