package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/model"
)

// ErrInsufficientCredits is returned by ApplyCredit when a debit would
// drive the cached balance below zero. No transaction row is written.
var ErrInsufficientCredits = errors.New("insufficient credits")

// GetCreditBalance returns the cached credit balance of a user.
func (r *Repository) GetCreditBalance(ctx context.Context, userID int64) (int, error) {
	var balance int
	err := r.db.GetContext(ctx, &balance, "SELECT credit_balance FROM users WHERE id = $1", userID)
	return balance, err
}

// ApplyCredit mutates a user's balance atomically: it locks the user row,
// rejects debits that would go negative, updates the cached balance and
// appends one immutable row to credit_transactions — all in one database
// transaction. Returns the transaction id and the new balance.
func (r *Repository) ApplyCredit(ctx context.Context, userID int64, amount int, ruleName, referenceID string, referenceType model.ReferenceType) (uuid.UUID, int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, 0, err
	}
	defer tx.Rollback()

	var balanceBefore int
	err = tx.GetContext(ctx, &balanceBefore, "SELECT credit_balance FROM users WHERE id = $1 FOR UPDATE", userID)
	if err != nil {
		return uuid.Nil, 0, fmt.Errorf("failed to get balance: %w", err)
	}

	balanceAfter := balanceBefore + amount

	if amount < 0 && balanceAfter < 0 {
		return uuid.Nil, balanceBefore, ErrInsufficientCredits
	}

	_, err = tx.ExecContext(ctx, "UPDATE users SET credit_balance = $1, updated_at = NOW() WHERE id = $2", balanceAfter, userID)
	if err != nil {
		return uuid.Nil, 0, fmt.Errorf("failed to update balance: %w", err)
	}

	var txID uuid.UUID
	err = tx.QueryRowContext(ctx, `
		INSERT INTO credit_transactions (user_id, amount, rule_name, reference_id, reference_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		userID, amount, ruleName, referenceID, referenceType).Scan(&txID)
	if err != nil {
		return uuid.Nil, 0, fmt.Errorf("failed to create transaction record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, 0, err
	}

	return txID, balanceAfter, nil
}

// GetCreditTransactions returns credit history for a user, newest first.
func (r *Repository) GetCreditTransactions(ctx context.Context, userID int64, limit, offset int) ([]model.CreditTransaction, error) {
	var transactions []model.CreditTransaction
	err := r.db.SelectContext(ctx, &transactions, `
		SELECT * FROM credit_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	return transactions, err
}

// SumCreditTransactions folds the ledger for a user. Used by consistency
// checks against the cached balance.
func (r *Repository) SumCreditTransactions(ctx context.Context, userID int64) (int, error) {
	var sum int
	err := r.db.GetContext(ctx, &sum,
		"SELECT COALESCE(SUM(amount), 0) FROM credit_transactions WHERE user_id = $1", userID)
	return sum, err
}
