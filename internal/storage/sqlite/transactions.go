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

// CreateTransaction persists the transaction record together with the updated
// balances of the wallets it touched, in one database transaction. This is the
// commit point the ledger treats as atomic: a transfer's debit and credit are
// never visible separately.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, t *models.Transaction, wallets ...*models.Wallet) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt == 0 {
		t.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, title, type, amount, wallet_id, from_wallet_id, to_wallet_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Title, string(t.Type), t.Amount.String(),
		nullable(t.WalletID), nullable(t.FromWalletID), nullable(t.ToWalletID), t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	if err := updateBalances(ctx, tx, wallets); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetTransaction retrieves a transaction by ID scoped to the user.
// Returns (nil, nil) if it does not exist.
func (s *SQLiteStore) GetTransaction(ctx context.Context, userID, id string) (*models.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, type, amount, wallet_id, from_wallet_id, to_wallet_id, created_at
		 FROM transactions WHERE user_id = ? AND id = ?`,
		userID, id,
	)
	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return t, nil
}

// ListTransactions retrieves all transactions for a user, newest first.
func (s *SQLiteStore) ListTransactions(ctx context.Context, userID string) ([]*models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, title, type, amount, wallet_id, from_wallet_id, to_wallet_id, created_at
		 FROM transactions WHERE user_id = ? ORDER BY created_at DESC, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []*models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txs, nil
}

// DeleteTransaction removes the record and commits the reversed wallet
// balances atomically. Wallets deleted since the transaction was recorded are
// simply not in the list; their reversal was already skipped by the ledger.
func (s *SQLiteStore) DeleteTransaction(ctx context.Context, userID, id string, wallets ...*models.Wallet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM transactions WHERE user_id = ? AND id = ?`, userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if err := requireRow(res, "transaction", id); err != nil {
		return err
	}

	if err := updateBalances(ctx, tx, wallets); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func updateBalances(ctx context.Context, tx *sql.Tx, wallets []*models.Wallet) error {
	for _, w := range wallets {
		if w == nil {
			continue
		}
		_, err := tx.ExecContext(ctx,
			`UPDATE wallets SET balance = ? WHERE user_id = ? AND id = ?`,
			w.Balance.String(), w.UserID, w.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update wallet balance: %w", err)
		}
	}
	return nil
}

func scanTransaction(row scanner) (*models.Transaction, error) {
	t := &models.Transaction{}
	var txType, amount string
	var walletID, fromID, toID sql.NullString
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &txType, &amount, &walletID, &fromID, &toID, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Type = models.TransactionType(txType)
	a, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("corrupt amount %q: %w", amount, err)
	}
	t.Amount = a
	t.WalletID = walletID.String
	t.FromWalletID = fromID.String
	t.ToWalletID = toID.String
	return t, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
