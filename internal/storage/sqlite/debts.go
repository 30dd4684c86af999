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

// CreateDebt persists a new debt record.
func (s *SQLiteStore) CreateDebt(ctx context.Context, debt *models.Debt) error {
	if debt.ID == "" {
		debt.ID = uuid.New().String()
	}
	if debt.CreatedAt == 0 {
		debt.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO debts (id, user_id, direction, counterparty, principal, paid, loan_date, due_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		debt.ID, debt.UserID, string(debt.Direction), debt.Counterparty,
		debt.Principal.String(), debt.Paid.String(), debt.LoanDate, debt.DueDate, debt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert debt: %w", err)
	}
	return nil
}

// GetDebt retrieves a debt by ID scoped to the user.
// Returns (nil, nil) if it does not exist.
func (s *SQLiteStore) GetDebt(ctx context.Context, userID, id string) (*models.Debt, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, direction, counterparty, principal, paid, loan_date, due_date, created_at
		 FROM debts WHERE user_id = ? AND id = ?`,
		userID, id,
	)
	debt, err := scanDebt(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}
	return debt, nil
}

// ListDebts retrieves all debts for a user, newest loan first.
func (s *SQLiteStore) ListDebts(ctx context.Context, userID string) ([]*models.Debt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, direction, counterparty, principal, paid, loan_date, due_date, created_at
		 FROM debts WHERE user_id = ? ORDER BY loan_date DESC, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var debts []*models.Debt
	for rows.Next() {
		debt, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, debt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debts: %w", err)
	}
	return debts, nil
}

// UpdateDebt writes the debt's mutable fields, including paid-so-far.
func (s *SQLiteStore) UpdateDebt(ctx context.Context, debt *models.Debt) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE debts SET direction = ?, counterparty = ?, principal = ?, paid = ?, loan_date = ?, due_date = ?
		 WHERE user_id = ? AND id = ?`,
		string(debt.Direction), debt.Counterparty, debt.Principal.String(), debt.Paid.String(),
		debt.LoanDate, debt.DueDate, debt.UserID, debt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update debt: %w", err)
	}
	return requireRow(res, "debt", debt.ID)
}

// DeleteDebt removes a debt entirely.
func (s *SQLiteStore) DeleteDebt(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM debts WHERE user_id = ? AND id = ?`, userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	return requireRow(res, "debt", id)
}

func scanDebt(row scanner) (*models.Debt, error) {
	debt := &models.Debt{}
	var direction, principal, paid string
	if err := row.Scan(&debt.ID, &debt.UserID, &direction, &debt.Counterparty,
		&principal, &paid, &debt.LoanDate, &debt.DueDate, &debt.CreatedAt); err != nil {
		return nil, err
	}
	debt.Direction = models.DebtDirection(direction)
	p, err := decimal.NewFromString(principal)
	if err != nil {
		return nil, fmt.Errorf("corrupt principal %q: %w", principal, err)
	}
	debt.Principal = p
	pd, err := decimal.NewFromString(paid)
	if err != nil {
		return nil, fmt.Errorf("corrupt paid amount %q: %w", paid, err)
	}
	debt.Paid = pd
	return debt, nil
}
