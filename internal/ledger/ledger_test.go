package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/planio-app/planio/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func wallet(id, balance string) *models.Wallet {
	return &models.Wallet{ID: id, UserID: "u1", Name: id, Category: models.WalletCash, Balance: dec(balance)}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name        string
		balance     string
		txType      models.TransactionType
		amount      string
		wantBalance string
		wantErr     bool
	}{
		{name: "income adds", balance: "100", txType: models.TransactionIncome, amount: "25.50", wantBalance: "125.50"},
		{name: "expense subtracts", balance: "100", txType: models.TransactionExpense, amount: "30", wantBalance: "70"},
		{name: "overdraft permitted", balance: "10", txType: models.TransactionExpense, amount: "25", wantBalance: "-15"},
		{name: "transfer type rejected", balance: "100", txType: models.TransactionTransfer, amount: "10", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := wallet("w1", tt.balance)
			got, err := Apply(w, models.Transaction{Type: tt.txType, Amount: dec(tt.amount)})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Apply() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !got.Equal(dec(tt.wantBalance)) {
				t.Errorf("Apply() balance = %s, want %s", got, tt.wantBalance)
			}
			if !w.Balance.Equal(dec(tt.wantBalance)) {
				t.Errorf("wallet balance = %s, want %s", w.Balance, tt.wantBalance)
			}
		})
	}
}

func TestApply_NilWallet(t *testing.T) {
	_, err := Apply(nil, models.Transaction{Type: models.TransactionIncome, Amount: dec("5")})
	if !errors.Is(err, ErrMissingWallet) {
		t.Errorf("expected ErrMissingWallet, got %v", err)
	}
}

func TestReverse(t *testing.T) {
	t.Run("income reversal subtracts", func(t *testing.T) {
		w := wallet("w1", "120")
		Reverse(w, models.Transaction{Type: models.TransactionIncome, Amount: dec("20")})
		if !w.Balance.Equal(dec("100")) {
			t.Errorf("balance = %s, want 100", w.Balance)
		}
	})

	t.Run("expense reversal adds", func(t *testing.T) {
		w := wallet("w1", "70")
		Reverse(w, models.Transaction{Type: models.TransactionExpense, Amount: dec("20")})
		if !w.Balance.Equal(dec("90")) {
			t.Errorf("balance = %s, want 90", w.Balance)
		}
	})

	t.Run("orphaned wallet is a no-op", func(t *testing.T) {
		// Must not panic; the delete proceeds even though the wallet is gone.
		Reverse(nil, models.Transaction{Type: models.TransactionExpense, Amount: dec("20")})
	})
}

// Round-trip conservation: applying a sequence and then reversing it restores
// every starting balance exactly, with no drift from repeated cycles.
func TestApplyReverse_RoundTrip(t *testing.T) {
	w := wallet("w1", "100.10")
	txs := []models.Transaction{
		{Type: models.TransactionIncome, Amount: dec("0.10")},
		{Type: models.TransactionExpense, Amount: dec("33.33")},
		{Type: models.TransactionIncome, Amount: dec("7.77")},
		{Type: models.TransactionExpense, Amount: dec("0.01")},
	}

	for i := 0; i < 100; i++ {
		for _, tx := range txs {
			if _, err := Apply(w, tx); err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
		}
		for _, tx := range txs {
			Reverse(w, tx)
		}
	}

	if !w.Balance.Equal(dec("100.10")) {
		t.Errorf("balance after round trips = %s, want 100.10", w.Balance)
	}
}

func TestNewTransfer(t *testing.T) {
	tests := []struct {
		name    string
		from    *models.Wallet
		to      *models.Wallet
		amount  string
		wantErr error
	}{
		{name: "valid", from: wallet("a", "100"), to: wallet("b", "50"), amount: "30"},
		{name: "same wallet", from: wallet("a", "100"), to: wallet("a", "100"), amount: "30", wantErr: ErrSameWallet},
		{name: "zero amount", from: wallet("a", "100"), to: wallet("b", "50"), amount: "0", wantErr: ErrNonPositiveAmount},
		{name: "negative amount", from: wallet("a", "100"), to: wallet("b", "50"), amount: "-5", wantErr: ErrNonPositiveAmount},
		{name: "missing wallet", from: nil, to: wallet("b", "50"), amount: "30", wantErr: ErrMissingWallet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fromBefore, toBefore decimal.Decimal
			if tt.from != nil {
				fromBefore = tt.from.Balance
			}
			if tt.to != nil {
				toBefore = tt.to.Balance
			}

			tx, err := NewTransfer(tt.from, tt.to, dec(tt.amount), "move")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewTransfer() error = %v, want %v", err, tt.wantErr)
				}
				if !errors.Is(err, ErrInvalidTransfer) {
					t.Errorf("error should wrap ErrInvalidTransfer, got %v", err)
				}
				// Rejection must leave both balances untouched.
				if tt.from != nil && !tt.from.Balance.Equal(fromBefore) {
					t.Errorf("from balance changed on rejected transfer: %s", tt.from.Balance)
				}
				if tt.to != nil && tt.to != tt.from && !tt.to.Balance.Equal(toBefore) {
					t.Errorf("to balance changed on rejected transfer: %s", tt.to.Balance)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewTransfer() failed: %v", err)
			}

			if tx.Type != models.TransactionTransfer {
				t.Errorf("tx type = %s, want transfer", tx.Type)
			}
			if tx.FromWalletID != tt.from.ID || tx.ToWalletID != tt.to.ID {
				t.Errorf("tx wallet refs = %s->%s, want %s->%s", tx.FromWalletID, tx.ToWalletID, tt.from.ID, tt.to.ID)
			}
			if !tt.from.Balance.Equal(fromBefore.Sub(dec(tt.amount))) {
				t.Errorf("from balance = %s", tt.from.Balance)
			}
			if !tt.to.Balance.Equal(toBefore.Add(dec(tt.amount))) {
				t.Errorf("to balance = %s", tt.to.Balance)
			}
		})
	}
}

// Transfer zero-sum: a valid transfer never changes the total across wallets.
func TestNewTransfer_ZeroSum(t *testing.T) {
	cash := wallet("cash", "100")
	bank := wallet("bank", "50")
	wallets := []*models.Wallet{cash, bank}

	before := TotalBalance(wallets)
	if _, err := NewTransfer(cash, bank, dec("30"), "to bank"); err != nil {
		t.Fatalf("NewTransfer failed: %v", err)
	}
	after := TotalBalance(wallets)

	if !before.Equal(after) {
		t.Errorf("total changed: before %s, after %s", before, after)
	}
}

// The concrete scenario: Cash=$100, Bank=$50; transfer $30 Cash->Bank, then
// delete an earlier $20 expense against Cash.
func TestTransferAndReversalScenario(t *testing.T) {
	cash := wallet("cash", "100")
	bank := wallet("bank", "50")

	if _, err := NewTransfer(cash, bank, dec("30"), "to bank"); err != nil {
		t.Fatalf("NewTransfer failed: %v", err)
	}
	if !cash.Balance.Equal(dec("70")) {
		t.Errorf("cash = %s, want 70", cash.Balance)
	}
	if !bank.Balance.Equal(dec("80")) {
		t.Errorf("bank = %s, want 80", bank.Balance)
	}
	if total := TotalBalance([]*models.Wallet{cash, bank}); !total.Equal(dec("150")) {
		t.Errorf("total = %s, want 150", total)
	}

	Reverse(cash, models.Transaction{Type: models.TransactionExpense, Amount: dec("20")})
	if !cash.Balance.Equal(dec("90")) {
		t.Errorf("cash after reversal = %s, want 90", cash.Balance)
	}
}

func TestReverseTransfer(t *testing.T) {
	cash := wallet("cash", "70")
	bank := wallet("bank", "80")
	tx := models.Transaction{Type: models.TransactionTransfer, Amount: dec("30"), FromWalletID: "cash", ToWalletID: "bank"}

	ReverseTransfer(cash, bank, tx)
	if !cash.Balance.Equal(dec("100")) || !bank.Balance.Equal(dec("50")) {
		t.Errorf("balances = %s/%s, want 100/50", cash.Balance, bank.Balance)
	}

	// One side deleted: only the surviving wallet is restored.
	cash2 := wallet("cash", "70")
	ReverseTransfer(cash2, nil, tx)
	if !cash2.Balance.Equal(dec("100")) {
		t.Errorf("cash = %s, want 100", cash2.Balance)
	}
}

func TestTotalBalance(t *testing.T) {
	wallets := []*models.Wallet{
		wallet("a", "10.25"),
		nil, // deleted wallet, skipped
		wallet("b", "-3.25"),
		wallet("c", "0"),
	}
	if total := TotalBalance(wallets); !total.Equal(dec("7")) {
		t.Errorf("total = %s, want 7", total)
	}
}
