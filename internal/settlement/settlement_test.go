package settlement

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func equal(id string) Share { return Share{ParticipantID: id} }

func custom(id, amount string) Share {
	return Share{ParticipantID: id, Custom: true, Amount: dec(amount)}
}

func balanceOf(balances []ParticipantBalance, id string) decimal.Decimal {
	for _, b := range balances {
		if b.ParticipantID == id {
			return b.Net
		}
	}
	return decimal.Zero
}

func TestExpandShares(t *testing.T) {
	tests := []struct {
		name     string
		expense  Expense
		opts     Options
		wantErr  bool
		validate func(t *testing.T, owed map[string]decimal.Decimal)
	}{
		{
			name:    "equal shares split evenly",
			expense: Expense{Total: dec("90"), PayerID: "alice", Shares: []Share{equal("bob"), equal("carol")}},
			validate: func(t *testing.T, owed map[string]decimal.Decimal) {
				if !owed["bob"].Equal(dec("45")) || !owed["carol"].Equal(dec("45")) {
					t.Errorf("owed = %v, want 45 each", owed)
				}
			},
		},
		{
			name: "custom shares fixed, equal shares take the remainder",
			expense: Expense{Total: dec("100"), PayerID: "alice", Shares: []Share{
				custom("bob", "40"), equal("carol"), equal("dave"),
			}},
			validate: func(t *testing.T, owed map[string]decimal.Decimal) {
				if !owed["bob"].Equal(dec("40")) {
					t.Errorf("bob owed = %s, want 40", owed["bob"])
				}
				if !owed["carol"].Equal(dec("30")) || !owed["dave"].Equal(dec("30")) {
					t.Errorf("equal shares = %s/%s, want 30 each", owed["carol"], owed["dave"])
				}
			},
		},
		{
			name:    "last equal share absorbs rounding leftover",
			expense: Expense{Total: dec("100"), PayerID: "alice", Shares: []Share{equal("a"), equal("b"), equal("c")}},
			validate: func(t *testing.T, owed map[string]decimal.Decimal) {
				sum := owed["a"].Add(owed["b"]).Add(owed["c"])
				if !sum.Equal(dec("100")) {
					t.Errorf("shares sum to %s, want 100", sum)
				}
				if !owed["a"].Equal(dec("33.33")) || !owed["b"].Equal(dec("33.33")) {
					t.Errorf("base shares = %s/%s, want 33.33", owed["a"], owed["b"])
				}
				if !owed["c"].Equal(dec("33.34")) {
					t.Errorf("last share = %s, want 33.34", owed["c"])
				}
			},
		},
		{
			name: "custom overallocation tolerated by default",
			expense: Expense{Total: dec("50"), PayerID: "alice", Shares: []Share{
				custom("bob", "60"),
			}},
			validate: func(t *testing.T, owed map[string]decimal.Decimal) {
				if !owed["bob"].Equal(dec("60")) {
					t.Errorf("bob owed = %s, want 60", owed["bob"])
				}
			},
		},
		{
			name: "strict: custom shares exceeding total rejected",
			expense: Expense{Total: dec("50"), PayerID: "alice", Shares: []Share{
				custom("bob", "60"),
			}},
			opts:    Options{StrictShares: true},
			wantErr: true,
		},
		{
			name: "strict: custom-only underallocation rejected",
			expense: Expense{Total: dec("50"), PayerID: "alice", Shares: []Share{
				custom("bob", "20"), custom("carol", "20"),
			}},
			opts:    Options{StrictShares: true},
			wantErr: true,
		},
		{
			name: "strict: exact custom shares accepted",
			expense: Expense{Total: dec("50"), PayerID: "alice", Shares: []Share{
				custom("bob", "30"), custom("carol", "20"),
			}},
			opts: Options{StrictShares: true},
			validate: func(t *testing.T, owed map[string]decimal.Decimal) {
				if !owed["bob"].Equal(dec("30")) || !owed["carol"].Equal(dec("20")) {
					t.Errorf("owed = %v", owed)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owed, err := ExpandShares(tt.expense, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExpandShares() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrShareMismatch) {
					t.Errorf("expected ErrShareMismatch, got %v", err)
				}
				return
			}
			if tt.validate != nil {
				tt.validate(t, owed)
			}
		})
	}
}

// The concrete scenario: total=$90, payer Alice, Bob and Carol equal shares,
// Alice not a participant.
func TestPlan_TwoEqualShares(t *testing.T) {
	expenses := []Expense{
		{Total: dec("90"), PayerID: "alice", Shares: []Share{equal("bob"), equal("carol")}},
	}

	balances, transfers, err := Plan(expenses, Options{})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if !balanceOf(balances, "alice").Equal(dec("90")) {
		t.Errorf("alice net = %s, want 90", balanceOf(balances, "alice"))
	}
	if !balanceOf(balances, "bob").Equal(dec("-45")) {
		t.Errorf("bob net = %s, want -45", balanceOf(balances, "bob"))
	}
	if !balanceOf(balances, "carol").Equal(dec("-45")) {
		t.Errorf("carol net = %s, want -45", balanceOf(balances, "carol"))
	}

	if len(transfers) != 2 {
		t.Fatalf("expected 2 transfers, got %d", len(transfers))
	}
	for _, tr := range transfers {
		if tr.ToID != "alice" || !tr.Amount.Equal(dec("45")) {
			t.Errorf("unexpected transfer %+v", tr)
		}
	}
	// Stable ties: bob appears before carol in input order.
	if transfers[0].FromID != "bob" || transfers[1].FromID != "carol" {
		t.Errorf("tie order = %s, %s; want bob, carol", transfers[0].FromID, transfers[1].FromID)
	}
}

func TestComputeBalances_PayerIsParticipant(t *testing.T) {
	expenses := []Expense{
		{Total: dec("60"), PayerID: "alice", Shares: []Share{equal("alice"), equal("bob"), equal("carol")}},
	}

	balances, err := ComputeBalances(expenses, Options{})
	if err != nil {
		t.Fatalf("ComputeBalances failed: %v", err)
	}

	// Alice paid 60 and owes her own 20 share.
	if !balanceOf(balances, "alice").Equal(dec("40")) {
		t.Errorf("alice net = %s, want 40", balanceOf(balances, "alice"))
	}
	if !balanceOf(balances, "bob").Equal(dec("-20")) || !balanceOf(balances, "carol").Equal(dec("-20")) {
		t.Errorf("bob/carol = %s/%s, want -20 each", balanceOf(balances, "bob"), balanceOf(balances, "carol"))
	}
}

func TestComputeBalances_AccumulatesAcrossExpenses(t *testing.T) {
	expenses := []Expense{
		{Total: dec("30"), PayerID: "alice", Shares: []Share{equal("bob")}},
		{Total: dec("10"), PayerID: "bob", Shares: []Share{equal("alice")}},
	}

	balances, err := ComputeBalances(expenses, Options{})
	if err != nil {
		t.Fatalf("ComputeBalances failed: %v", err)
	}

	if !balanceOf(balances, "alice").Equal(dec("20")) {
		t.Errorf("alice net = %s, want 20", balanceOf(balances, "alice"))
	}
	if !balanceOf(balances, "bob").Equal(dec("-20")) {
		t.Errorf("bob net = %s, want -20", balanceOf(balances, "bob"))
	}
}

func TestPlan_EmptyInput(t *testing.T) {
	balances, transfers, err := Plan(nil, Options{})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(balances) != 0 || len(transfers) != 0 {
		t.Errorf("expected empty results, got %d balances, %d transfers", len(balances), len(transfers))
	}
}

// Participant IDs are case-sensitive; entries differing only in case are
// distinct participants.
func TestComputeBalances_CaseSensitiveIDs(t *testing.T) {
	expenses := []Expense{
		{Total: dec("10"), PayerID: "Alice", Shares: []Share{equal("alice")}},
	}

	balances, err := ComputeBalances(expenses, Options{})
	if err != nil {
		t.Fatalf("ComputeBalances failed: %v", err)
	}
	if len(balances) != 2 {
		t.Fatalf("expected 2 distinct participants, got %d", len(balances))
	}
}

// Applying the settlement plan discharges every balance to exactly zero, and
// the plan never exceeds n-1 transfers for n nonzero participants.
func TestSimplify_DischargesAllBalances(t *testing.T) {
	tests := []struct {
		name     string
		expenses []Expense
	}{
		{
			name: "chain of expenses",
			expenses: []Expense{
				{Total: dec("90"), PayerID: "alice", Shares: []Share{equal("bob"), equal("carol")}},
				{Total: dec("30"), PayerID: "bob", Shares: []Share{equal("alice"), equal("carol"), equal("bob")}},
				{Total: dec("12.50"), PayerID: "carol", Shares: []Share{custom("alice", "7.50"), equal("dave")}},
			},
		},
		{
			name: "two payers, shared debtors",
			expenses: []Expense{
				{Total: dec("100"), PayerID: "p1", Shares: []Share{equal("d1"), equal("d2")}},
				{Total: dec("40"), PayerID: "p2", Shares: []Share{equal("d1")}},
			},
		},
		{
			name: "uneven three-way split",
			expenses: []Expense{
				{Total: dec("100"), PayerID: "x", Shares: []Share{equal("y"), equal("z"), equal("x")}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances, transfers, err := Plan(tt.expenses, Options{})
			if err != nil {
				t.Fatalf("Plan failed: %v", err)
			}

			remaining := make(map[string]decimal.Decimal, len(balances))
			nonzero := 0
			for _, b := range balances {
				remaining[b.ParticipantID] = b.Net
				if !b.Net.IsZero() {
					nonzero++
				}
			}

			for _, tr := range transfers {
				remaining[tr.FromID] = remaining[tr.FromID].Add(tr.Amount)
				remaining[tr.ToID] = remaining[tr.ToID].Sub(tr.Amount)
			}
			for id, net := range remaining {
				if !net.IsZero() {
					t.Errorf("participant %s left with balance %s after settlement", id, net)
				}
			}

			if nonzero > 0 && len(transfers) > nonzero-1 {
				t.Errorf("got %d transfers for %d nonzero participants, want at most %d",
					len(transfers), nonzero, nonzero-1)
			}
		})
	}
}

func TestSimplify_LargestMatchedFirst(t *testing.T) {
	balances := []ParticipantBalance{
		{ParticipantID: "small-creditor", Net: dec("10")},
		{ParticipantID: "big-creditor", Net: dec("50")},
		{ParticipantID: "big-debtor", Net: dec("-40")},
		{ParticipantID: "small-debtor", Net: dec("-20")},
	}

	transfers := Simplify(balances)
	if len(transfers) != 3 {
		t.Fatalf("expected 3 transfers, got %d", len(transfers))
	}
	first := transfers[0]
	if first.FromID != "big-debtor" || first.ToID != "big-creditor" || !first.Amount.Equal(dec("40")) {
		t.Errorf("first transfer = %+v, want big-debtor -> big-creditor 40", first)
	}
}
