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

// CreateSharedExpense persists an expense and its pre-expanded shares in one
// database transaction.
func (s *SQLiteStore) CreateSharedExpense(ctx context.Context, expense *models.SharedExpense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO shared_expenses (id, user_id, description, total, payer_id, payer_name, settled, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.UserID, expense.Description, expense.Total.String(),
		expense.PayerID, expense.PayerName, boolToInt(expense.Settled), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert shared expense: %w", err)
	}

	for _, share := range expense.Shares {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expense_shares (expense_id, participant_id, display_name, mode, amount)
			 VALUES (?, ?, ?, ?, ?)`,
			expense.ID, share.ParticipantID, share.DisplayName, string(share.Mode), share.Amount.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetSharedExpense retrieves an expense and its shares.
// Returns (nil, nil) if it does not exist.
func (s *SQLiteStore) GetSharedExpense(ctx context.Context, userID, id string) (*models.SharedExpense, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, description, total, payer_id, payer_name, settled, created_at
		 FROM shared_expenses WHERE user_id = ? AND id = ?`,
		userID, id,
	)
	expense, err := scanSharedExpense(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shared expense: %w", err)
	}

	if err := s.loadShares(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListSharedExpenses retrieves all expenses for a user with their shares,
// newest first.
func (s *SQLiteStore) ListSharedExpenses(ctx context.Context, userID string) ([]*models.SharedExpense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, description, total, payer_id, payer_name, settled, created_at
		 FROM shared_expenses WHERE user_id = ? ORDER BY created_at DESC, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shared expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.SharedExpense
	for rows.Next() {
		expense, err := scanSharedExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shared expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shared expenses: %w", err)
	}

	for _, expense := range expenses {
		if err := s.loadShares(ctx, expense); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// SetExpenseSettled toggles the settled flag. Shares are never recomputed.
func (s *SQLiteStore) SetExpenseSettled(ctx context.Context, userID, id string, settled bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE shared_expenses SET settled = ? WHERE user_id = ? AND id = ?`,
		boolToInt(settled), userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update settled flag: %w", err)
	}
	return requireRow(res, "shared expense", id)
}

// DeleteSharedExpense removes an expense; its shares cascade.
func (s *SQLiteStore) DeleteSharedExpense(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM shared_expenses WHERE user_id = ? AND id = ?`, userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete shared expense: %w", err)
	}
	return requireRow(res, "shared expense", id)
}

func (s *SQLiteStore) loadShares(ctx context.Context, expense *models.SharedExpense) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT participant_id, display_name, mode, amount
		 FROM expense_shares WHERE expense_id = ? ORDER BY rowid`,
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get expense shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var share models.ExpenseShare
		var mode, amount string
		if err := rows.Scan(&share.ParticipantID, &share.DisplayName, &mode, &amount); err != nil {
			return fmt.Errorf("failed to scan expense share: %w", err)
		}
		share.Mode = models.ShareMode(mode)
		a, err := decimal.NewFromString(amount)
		if err != nil {
			return fmt.Errorf("corrupt share amount %q: %w", amount, err)
		}
		share.Amount = a
		expense.Shares = append(expense.Shares, share)
	}
	return rows.Err()
}

func scanSharedExpense(row scanner) (*models.SharedExpense, error) {
	expense := &models.SharedExpense{}
	var total string
	var settled int
	if err := row.Scan(&expense.ID, &expense.UserID, &expense.Description, &total,
		&expense.PayerID, &expense.PayerName, &settled, &expense.CreatedAt); err != nil {
		return nil, err
	}
	t, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("corrupt total %q: %w", total, err)
	}
	expense.Total = t
	expense.Settled = settled != 0
	return expense, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
