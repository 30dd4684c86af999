package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/planio-app/planio/internal/models"
)

// CreateWallet persists a new wallet, generating ID and CreatedAt if unset.
func (s *SQLiteStore) CreateWallet(ctx context.Context, wallet *models.Wallet) error {
	fillWalletDefaults(wallet)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO wallets (id, user_id, name, category, balance, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		wallet.ID, wallet.UserID, wallet.Name, string(wallet.Category),
		wallet.Balance.String(), wallet.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert wallet: %w", err)
	}
	return nil
}

// CreateWallets persists several wallets in one database transaction. Used by
// the default-wallet bootstrap so a new account never sees a partial set.
func (s *SQLiteStore) CreateWallets(ctx context.Context, wallets []*models.Wallet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, w := range wallets {
		fillWalletDefaults(w)
		_, err := tx.ExecContext(ctx,
			`INSERT INTO wallets (id, user_id, name, category, balance, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			w.ID, w.UserID, w.Name, string(w.Category), w.Balance.String(), w.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert wallet %q: %w", w.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetWallet retrieves a wallet by ID scoped to the user.
// Returns (nil, nil) if the wallet does not exist (degraded read).
func (s *SQLiteStore) GetWallet(ctx context.Context, userID, id string) (*models.Wallet, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, category, balance, created_at
		 FROM wallets WHERE user_id = ? AND id = ?`,
		userID, id,
	)
	wallet, err := scanWallet(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return wallet, nil
}

// ListWallets retrieves all wallets for a user, oldest first.
func (s *SQLiteStore) ListWallets(ctx context.Context, userID string) ([]*models.Wallet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, name, category, balance, created_at
		 FROM wallets WHERE user_id = ? ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []*models.Wallet
	for rows.Next() {
		wallet, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet: %w", err)
		}
		wallets = append(wallets, wallet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wallets: %w", err)
	}
	return wallets, nil
}

// UpdateWallet writes the wallet's name, category and balance.
func (s *SQLiteStore) UpdateWallet(ctx context.Context, wallet *models.Wallet) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE wallets SET name = ?, category = ?, balance = ? WHERE user_id = ? AND id = ?`,
		wallet.Name, string(wallet.Category), wallet.Balance.String(), wallet.UserID, wallet.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}
	return requireRow(res, "wallet", wallet.ID)
}

// DeleteWallet removes a wallet. Historical transactions referencing it are
// left untouched; readers tolerate the orphaned references.
func (s *SQLiteStore) DeleteWallet(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM wallets WHERE user_id = ? AND id = ?`, userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete wallet: %w", err)
	}
	return requireRow(res, "wallet", id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWallet(row scanner) (*models.Wallet, error) {
	wallet := &models.Wallet{}
	var category, balance string
	if err := row.Scan(&wallet.ID, &wallet.UserID, &wallet.Name, &category, &balance, &wallet.CreatedAt); err != nil {
		return nil, err
	}
	wallet.Category = models.WalletCategory(category)
	b, err := decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("corrupt balance %q: %w", balance, err)
	}
	wallet.Balance = b
	return wallet, nil
}

func fillWalletDefaults(w *models.Wallet) {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	if w.CreatedAt == 0 {
		w.CreatedAt = time.Now().Unix()
	}
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s not found: %s", kind, id)
	}
	return nil
}
