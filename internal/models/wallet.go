package models

import "github.com/shopspring/decimal"

// WalletCategory classifies where the money lives.
type WalletCategory string

const (
	WalletCash   WalletCategory = "cash"
	WalletBank   WalletCategory = "bank"
	WalletCard   WalletCategory = "card"
	WalletMobile WalletCategory = "mobile"
)

// Valid reports whether the category is one of the known wallet categories.
func (c WalletCategory) Valid() bool {
	switch c {
	case WalletCash, WalletBank, WalletCard, WalletMobile:
		return true
	}
	return false
}

// Wallet is a named money container with a running balance.
//
// The balance invariant: balance equals the initial balance plus the sum of signed
// contributions from all non-reversed transactions referencing this wallet. The
// ledger package is the only writer that may mutate Balance.
type Wallet struct {
	// ID is the unique identifier for the wallet (UUID format).
	ID string

	// UserID is the owning user.
	UserID string

	// Name is the display name (e.g., "Cash", "Main Bank").
	Name string

	// Category classifies the wallet (cash/bank/card/mobile).
	Category WalletCategory

	// Balance is the current running balance. Signed; overdraft is permitted.
	Balance decimal.Decimal

	// CreatedAt is the Unix timestamp when the wallet was created.
	CreatedAt int64
}

// DefaultWallets returns the four wallets bootstrapped for a new user.
func DefaultWallets(userID string) []*Wallet {
	defaults := []struct {
		name     string
		category WalletCategory
	}{
		{"Cash", WalletCash},
		{"Bank", WalletBank},
		{"Card", WalletCard},
		{"Mobile", WalletMobile},
	}
	wallets := make([]*Wallet, len(defaults))
	for i, d := range defaults {
		wallets[i] = &Wallet{
			UserID:   userID,
			Name:     d.name,
			Category: d.category,
			Balance:  decimal.Zero,
		}
	}
	return wallets
}
