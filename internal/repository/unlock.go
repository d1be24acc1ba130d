package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/model"
)

var ErrUnlockNotFound = errors.New("contact unlock not found")

func (r *Repository) GetContactUnlock(ctx context.Context, unlockerID, unlockedUserID int64) (*model.ContactUnlock, error) {
	var unlock model.ContactUnlock
	err := r.db.GetContext(ctx, &unlock,
		"SELECT * FROM contact_unlocks WHERE unlocker_id = $1 AND unlocked_user_id = $2",
		unlockerID, unlockedUserID)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrUnlockNotFound
		}
		return nil, err
	}
	return &unlock, nil
}

// CreateContactUnlock records an unlock and, for the credit method, debits
// the unlocker in the same database transaction. The unlock row is
// inserted first with ON CONFLICT DO NOTHING: a concurrent duplicate loses
// the unique-key race, the whole transaction rolls back with no debit, and
// the existing row is returned with alreadyUnlocked=true. Exactly one
// debit can ever happen per (unlocker, target) pair.
func (r *Repository) CreateContactUnlock(ctx context.Context, unlockerID, unlockedUserID int64, cost int, method model.UnlockMethod) (*model.ContactUnlock, int, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, 0, false, err
	}
	defer tx.Rollback()

	unlock := &model.ContactUnlock{
		UnlockerID:     unlockerID,
		UnlockedUserID: unlockedUserID,
		Method:         method,
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO contact_unlocks (unlocker_id, unlocked_user_id, method)
		VALUES ($1, $2, $3)
		ON CONFLICT (unlocker_id, unlocked_user_id) DO NOTHING
		RETURNING id, created_at`,
		unlockerID, unlockedUserID, method).Scan(&unlock.ID, &unlock.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			// Already unlocked; surface the existing row untouched.
			existing, getErr := r.GetContactUnlock(ctx, unlockerID, unlockedUserID)
			if getErr != nil {
				return nil, 0, false, getErr
			}
			balance, getErr := r.GetCreditBalance(ctx, unlockerID)
			if getErr != nil {
				return nil, 0, false, getErr
			}
			return existing, balance, true, nil
		}
		return nil, 0, false, fmt.Errorf("failed to create unlock: %w", err)
	}

	var balanceBefore int
	err = tx.GetContext(ctx, &balanceBefore,
		"SELECT credit_balance FROM users WHERE id = $1 FOR UPDATE", unlockerID)
	if err != nil {
		if isNoRows(err) {
			return nil, 0, false, ErrUserNotFound
		}
		return nil, 0, false, fmt.Errorf("failed to get balance: %w", err)
	}

	balanceAfter := balanceBefore
	if cost > 0 {
		balanceAfter = balanceBefore - cost
		if balanceAfter < 0 {
			return nil, balanceBefore, false, ErrInsufficientCredits
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE users SET credit_balance = $1, updated_at = NOW() WHERE id = $2",
			balanceAfter, unlockerID)
		if err != nil {
			return nil, 0, false, fmt.Errorf("failed to update balance: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO credit_transactions (user_id, amount, rule_name, reference_id, reference_type)
			VALUES ($1, $2, $3, $4, $5)`,
			unlockerID, -cost, model.RuleContactUnlock,
			fmt.Sprintf("%d", unlockedUserID), model.ReferenceContactUnlock)
		if err != nil {
			return nil, 0, false, fmt.Errorf("failed to create transaction record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, false, err
	}

	return unlock, balanceAfter, false, nil
}

// ListContactUnlocks returns everyone the user has unlocked, newest first.
func (r *Repository) ListContactUnlocks(ctx context.Context, unlockerID int64) ([]model.ContactUnlock, error) {
	var unlocks []model.ContactUnlock
	err := r.db.SelectContext(ctx, &unlocks, `
		SELECT * FROM contact_unlocks
		WHERE unlocker_id = $1
		ORDER BY created_at DESC`,
		unlockerID)
	return unlocks, err
}
