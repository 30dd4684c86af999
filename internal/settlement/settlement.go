// Package settlement computes net balances for shared expenses and a small set
// of pairwise transfers that zeroes them.
//
// Participants are identified by canonical IDs, never display names; resolving
// IDs to names for presentation is the caller's job. All arithmetic is decimal.
package settlement

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// ErrShareMismatch is returned under strict validation when custom shares
// exceed the expense total, or when the expanded shares do not sum to the
// total within tolerance.
var ErrShareMismatch = errors.New("shares do not match expense total")

// shareTolerance is the allowed gap between the share sum and the expense
// total under strict validation.
var shareTolerance = decimal.NewFromFloat(0.01)

// Share is one participant's portion of an expense. A custom share carries a
// fixed Amount; an equal share's amount is computed during expansion.
type Share struct {
	ParticipantID string
	Custom        bool
	Amount        decimal.Decimal // fixed amount, custom shares only
}

// Expense is the minimal expense information the solver needs.
type Expense struct {
	Total   decimal.Decimal
	PayerID string
	Shares  []Share
}

// ParticipantBalance is one participant's net position across all expenses.
// Positive means the participant is owed money; negative means they owe.
type ParticipantBalance struct {
	ParticipantID string
	Net           decimal.Decimal
}

// Transfer is a single settlement payment from a debtor to a creditor.
type Transfer struct {
	FromID string
	ToID   string
	Amount decimal.Decimal
}

// Options controls solver behavior.
type Options struct {
	// StrictShares turns on share-sum validation. Off, over- or
	// under-allocated custom shares are silently tolerated, matching the
	// historically observed behavior.
	StrictShares bool
}

// ExpandShares computes each participant's owed amount for a single expense.
// Custom shares keep their fixed amounts; the remainder after custom shares is
// split evenly among equal shares, with the last equal share absorbing any
// rounding leftover so the amounts sum exactly to the remainder.
func ExpandShares(e Expense, opts Options) (map[string]decimal.Decimal, error) {
	customTotal := decimal.Zero
	equalCount := 0
	for _, s := range e.Shares {
		if s.Custom {
			customTotal = customTotal.Add(s.Amount)
		} else {
			equalCount++
		}
	}

	if opts.StrictShares {
		if customTotal.GreaterThan(e.Total) {
			return nil, fmt.Errorf("%w: custom shares %s exceed total %s",
				ErrShareMismatch, customTotal, e.Total)
		}
		if equalCount == 0 && customTotal.Sub(e.Total).Abs().GreaterThan(shareTolerance) {
			return nil, fmt.Errorf("%w: custom shares %s, total %s",
				ErrShareMismatch, customTotal, e.Total)
		}
	}

	remainder := e.Total.Sub(customTotal)
	equalShare := decimal.Zero
	if equalCount > 0 {
		equalShare = remainder.Div(decimal.NewFromInt(int64(equalCount))).Round(2)
	}

	owed := make(map[string]decimal.Decimal, len(e.Shares))
	assigned := decimal.Zero
	lastEqual := ""
	for _, s := range e.Shares {
		if s.Custom {
			owed[s.ParticipantID] = owed[s.ParticipantID].Add(s.Amount)
		} else {
			owed[s.ParticipantID] = owed[s.ParticipantID].Add(equalShare)
			assigned = assigned.Add(equalShare)
			lastEqual = s.ParticipantID
		}
	}
	// Rounding leftover goes to the last equal-share participant.
	if lastEqual != "" {
		leftover := remainder.Sub(assigned)
		if !leftover.IsZero() {
			owed[lastEqual] = owed[lastEqual].Add(leftover)
		}
	}

	return owed, nil
}

// ComputeBalances accumulates net balances across all unsettled expenses. Per
// expense, the payer's balance increases by the total and every participant's
// balance (the payer's included, if they hold a share) decreases by their owed
// amount. The returned slice is ordered by first appearance, which makes the
// downstream greedy matching deterministic.
func ComputeBalances(expenses []Expense, opts Options) ([]ParticipantBalance, error) {
	net := make(map[string]decimal.Decimal)
	var order []string

	touch := func(id string) {
		if _, seen := net[id]; !seen {
			net[id] = decimal.Zero
			order = append(order, id)
		}
	}

	for _, e := range expenses {
		owed, err := ExpandShares(e, opts)
		if err != nil {
			return nil, err
		}

		touch(e.PayerID)
		net[e.PayerID] = net[e.PayerID].Add(e.Total)

		for _, s := range e.Shares {
			touch(s.ParticipantID)
		}
		for id, amount := range owed {
			net[id] = net[id].Sub(amount)
		}
	}

	balances := make([]ParticipantBalance, 0, len(order))
	for _, id := range order {
		balances = append(balances, ParticipantBalance{ParticipantID: id, Net: net[id]})
	}
	return balances, nil
}

// Simplify greedily matches the largest remaining creditor with the largest
// remaining debtor until one side is exhausted, producing at most n-1
// transfers for n participants with nonzero balance. Sorting is descending by
// amount and stable, so equal amounts keep their first-appearance order and
// the output is deterministic.
func Simplify(balances []ParticipantBalance) []Transfer {
	var creditors, debtors []ParticipantBalance
	for _, b := range balances {
		switch {
		case b.Net.IsPositive():
			creditors = append(creditors, b)
		case b.Net.IsNegative():
			debtors = append(debtors, ParticipantBalance{
				ParticipantID: b.ParticipantID,
				Net:           b.Net.Neg(), // store as positive magnitude
			})
		}
	}

	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].Net.GreaterThan(creditors[j].Net)
	})
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].Net.GreaterThan(debtors[j].Net)
	})

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := debtors[i].Net
		if creditors[j].Net.LessThan(amount) {
			amount = creditors[j].Net
		}

		if amount.IsPositive() {
			transfers = append(transfers, Transfer{
				FromID: debtors[i].ParticipantID,
				ToID:   creditors[j].ParticipantID,
				Amount: amount,
			})
		}

		debtors[i].Net = debtors[i].Net.Sub(amount)
		creditors[j].Net = creditors[j].Net.Sub(amount)

		if debtors[i].Net.IsZero() {
			i++
		}
		if creditors[j].Net.IsZero() {
			j++
		}
	}

	return transfers
}

// Plan runs balance accumulation and greedy matching in one step. Empty input
// yields empty results, not an error.
func Plan(expenses []Expense, opts Options) ([]ParticipantBalance, []Transfer, error) {
	balances, err := ComputeBalances(expenses, opts)
	if err != nil {
		return nil, nil, err
	}
	return balances, Simplify(balances), nil
}
