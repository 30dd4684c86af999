package models

import "github.com/shopspring/decimal"

// ShareMode selects how a participant's share of a shared expense is determined.
type ShareMode string

const (
	// ShareEqual splits the remainder (total minus custom shares) evenly among
	// all equal-mode participants.
	ShareEqual ShareMode = "equal"

	// ShareCustom is a fixed amount supplied at creation.
	ShareCustom ShareMode = "custom"
)

// ExpenseShare is one participant's portion of a shared expense.
//
// Amount is fixed for custom shares and computed once at expense creation for
// equal shares (shares are pre-expanded, never recomputed afterwards).
type ExpenseShare struct {
	// ParticipantID is the canonical identifier of the participant.
	ParticipantID string

	// DisplayName is the participant's name for presentation. Callers must not
	// use it as a join key; ParticipantID is the identity.
	DisplayName string

	// Mode is equal or custom.
	Mode ShareMode

	// Amount is this participant's owed amount.
	Amount decimal.Decimal
}

// SharedExpense is a group expense paid by one participant and owed by many.
type SharedExpense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// UserID is the owning user (the account tracking the expense, not
	// necessarily the payer).
	UserID string

	// Description is the human-readable description.
	Description string

	// Total is the full expense amount.
	Total decimal.Decimal

	// PayerID is the canonical identifier of the participant who paid.
	PayerID string

	// PayerName is the payer's display name.
	PayerName string

	// Shares are the pre-expanded participant shares.
	Shares []ExpenseShare

	// Settled marks the expense as discharged; settled expenses are excluded
	// from settlement computation. Toggled, never recomputed.
	Settled bool

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}
