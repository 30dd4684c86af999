package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/planio-app/planio/internal/ledger"
	"github.com/planio-app/planio/internal/models"
	"github.com/planio-app/planio/internal/storage"
)

// WalletService manages wallets and the aggregate balance view.
type WalletService struct {
	store storage.Store
}

// NewWalletService creates a new WalletService with the given storage backend.
func NewWalletService(store storage.Store) *WalletService {
	return &WalletService{store: store}
}

// Create adds a wallet for the user. The initial balance may be any signed
// amount; subsequent changes go through transactions.
func (s *WalletService) Create(ctx context.Context, userID, name string, category models.WalletCategory, balance decimal.Decimal) (*models.Wallet, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: wallet name is required", ErrInvalidInput)
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown wallet category %q", ErrInvalidInput, category)
	}

	wallet := &models.Wallet{
		UserID:   userID,
		Name:     name,
		Category: category,
		Balance:  balance,
	}
	if err := s.store.CreateWallet(ctx, wallet); err != nil {
		slog.Error("CreateWallet failed", "user_id", userID, "error", err)
		return nil, err
	}
	return wallet, nil
}

// List returns the user's wallets and their combined balance.
func (s *WalletService) List(ctx context.Context, userID string) ([]*models.Wallet, decimal.Decimal, error) {
	wallets, err := s.store.ListWallets(ctx, userID)
	if err != nil {
		slog.Error("ListWallets failed", "user_id", userID, "error", err)
		return nil, decimal.Zero, err
	}
	return wallets, ledger.TotalBalance(wallets), nil
}

// Rename updates the wallet's name and category. Balance is not editable here.
func (s *WalletService) Rename(ctx context.Context, userID, id, name string, category models.WalletCategory) (*models.Wallet, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: wallet name is required", ErrInvalidInput)
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown wallet category %q", ErrInvalidInput, category)
	}

	wallet, err := s.store.GetWallet(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, ErrNotFound
	}

	wallet.Name = name
	wallet.Category = category
	if err := s.store.UpdateWallet(ctx, wallet); err != nil {
		slog.Error("UpdateWallet failed", "wallet_id", id, "error", err)
		return nil, err
	}
	return wallet, nil
}

// Delete removes a wallet. Historical transactions that reference it are kept;
// readers tolerate the orphaned references and reversal of such transactions
// skips the missing side.
func (s *WalletService) Delete(ctx context.Context, userID, id string) error {
	wallet, err := s.store.GetWallet(ctx, userID, id)
	if err != nil {
		return err
	}
	if wallet == nil {
		return ErrNotFound
	}

	if err := s.store.DeleteWallet(ctx, userID, id); err != nil {
		slog.Error("DeleteWallet failed", "wallet_id", id, "error", err)
		return err
	}
	slog.Info("Wallet deleted", "user_id", userID, "wallet_id", id)
	return nil
}
