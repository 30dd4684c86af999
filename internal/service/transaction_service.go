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

// TransactionService records and deletes transactions, keeping wallet balances
// consistent through the ledger. Records are immutable; an edit is a delete
// followed by a recreate.
type TransactionService struct {
	store storage.Store
}

// NewTransactionService creates a new TransactionService with the given
// storage backend.
func NewTransactionService(store storage.Store) *TransactionService {
	return &TransactionService{store: store}
}

// Record applies an income or expense transaction to its wallet and persists
// both atomically.
func (s *TransactionService) Record(ctx context.Context, userID, walletID, title string, txType models.TransactionType, amount decimal.Decimal) (*models.Transaction, error) {
	if txType != models.TransactionIncome && txType != models.TransactionExpense {
		return nil, fmt.Errorf("%w: type must be income or expense", ErrInvalidInput)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must be non-negative", ErrInvalidInput)
	}

	wallet, err := s.store.GetWallet(ctx, userID, walletID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, ErrNotFound
	}

	tx := &models.Transaction{
		UserID:   userID,
		Title:    title,
		Type:     txType,
		Amount:   amount,
		WalletID: walletID,
	}
	if _, err := ledger.Apply(wallet, *tx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.store.CreateTransaction(ctx, tx, wallet); err != nil {
		slog.Error("CreateTransaction failed", "user_id", userID, "error", err)
		return nil, err
	}
	slog.Info("Transaction recorded", "user_id", userID, "transaction_id", tx.ID, "type", tx.Type)
	return tx, nil
}

// Transfer moves money between two of the user's wallets as a single record.
// Validation happens before any balance changes; the record and both balances
// commit together so the transfer is never observed half-applied.
func (s *TransactionService) Transfer(ctx context.Context, userID, fromID, toID, title string, amount decimal.Decimal) (*models.Transaction, error) {
	from, err := s.store.GetWallet(ctx, userID, fromID)
	if err != nil {
		return nil, err
	}
	to, err := s.store.GetWallet(ctx, userID, toID)
	if err != nil {
		return nil, err
	}

	tx, err := ledger.NewTransfer(from, to, amount, title)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateTransaction(ctx, tx, from, to); err != nil {
		slog.Error("Transfer persist failed", "user_id", userID, "error", err)
		return nil, err
	}
	slog.Info("Transfer recorded", "user_id", userID, "transaction_id", tx.ID, "amount", amount)
	return tx, nil
}

// List returns the user's transactions, newest first.
func (s *TransactionService) List(ctx context.Context, userID string) ([]*models.Transaction, error) {
	txs, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		slog.Error("ListTransactions failed", "user_id", userID, "error", err)
		return nil, err
	}
	return txs, nil
}

// Delete removes a transaction and reverses its balance effect. Wallets
// deleted since the transaction was recorded are skipped; the delete still
// succeeds and only the surviving balances change.
func (s *TransactionService) Delete(ctx context.Context, userID, id string) error {
	tx, err := s.store.GetTransaction(ctx, userID, id)
	if err != nil {
		return err
	}
	if tx == nil {
		return ErrNotFound
	}

	var wallets []*models.Wallet
	if tx.Type == models.TransactionTransfer {
		from, err := s.store.GetWallet(ctx, userID, tx.FromWalletID)
		if err != nil {
			return err
		}
		to, err := s.store.GetWallet(ctx, userID, tx.ToWalletID)
		if err != nil {
			return err
		}
		ledger.ReverseTransfer(from, to, *tx)
		wallets = []*models.Wallet{from, to}
	} else {
		wallet, err := s.store.GetWallet(ctx, userID, tx.WalletID)
		if err != nil {
			return err
		}
		ledger.Reverse(wallet, *tx)
		wallets = []*models.Wallet{wallet}
	}

	if err := s.store.DeleteTransaction(ctx, userID, id, wallets...); err != nil {
		slog.Error("DeleteTransaction failed", "transaction_id", id, "error", err)
		return err
	}
	slog.Info("Transaction deleted", "user_id", userID, "transaction_id", id)
	return nil
}
