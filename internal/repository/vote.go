package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/model"
)

// VoteToggle reports what a ToggleHelpfulVote call did. PriorCount is the
// target's helpful count before this call, read under the same row lock
// that serializes concurrent toggles, so reward tiering never races.
type VoteToggle struct {
	Voted      bool
	PriorCount int
	VoteCount  int
	AuthorID   int64
}

// ToggleHelpfulVote flips the (voter, target) vote state. The content row
// is locked FOR UPDATE first, then the vote row is inserted or deleted and
// the displayed count updated, all in one database transaction. A crash
// can never leave the count out of step with the vote rows.
func (r *Repository) ToggleHelpfulVote(ctx context.Context, voterID int64, targetID uuid.UUID, targetType model.TargetType) (*VoteToggle, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var target struct {
		AuthorID     int64 `db:"author_id"`
		HelpfulCount int   `db:"helpful_count"`
	}
	err = tx.GetContext(ctx, &target,
		"SELECT author_id, helpful_count FROM content WHERE id = $1 AND kind = $2 FOR UPDATE",
		targetID, targetType)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to lock target: %w", err)
	}

	result := &VoteToggle{
		PriorCount: target.HelpfulCount,
		AuthorID:   target.AuthorID,
	}

	res, err := tx.ExecContext(ctx,
		"DELETE FROM helpful_votes WHERE voter_id = $1 AND target_id = $2 AND target_type = $3",
		voterID, targetID, targetType)
	if err != nil {
		return nil, fmt.Errorf("failed to delete vote: %w", err)
	}
	deleted, _ := res.RowsAffected()

	if deleted > 0 {
		// Un-vote: remove the row, drop the count. Rewards stay paid.
		result.Voted = false
		result.VoteCount = target.HelpfulCount - 1
	} else {
		res, err = tx.ExecContext(ctx, `
			INSERT INTO helpful_votes (voter_id, target_id, target_type)
			VALUES ($1, $2, $3)
			ON CONFLICT (voter_id, target_id, target_type) DO NOTHING`,
			voterID, targetID, targetType)
		if err != nil {
			return nil, fmt.Errorf("failed to insert vote: %w", err)
		}
		inserted, _ := res.RowsAffected()
		if inserted == 0 {
			// Lost a race on the unique key; the voted state already
			// holds, so report it as such with no count change.
			result.Voted = true
			result.VoteCount = target.HelpfulCount
			return result, tx.Commit()
		}
		result.Voted = true
		result.VoteCount = target.HelpfulCount + 1
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE content SET helpful_count = $1 WHERE id = $2", result.VoteCount, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to update vote count: %w", err)
	}

	return result, tx.Commit()
}

// HasVoted reports whether the voter currently has a helpful vote on the
// target.
func (r *Repository) HasVoted(ctx context.Context, voterID int64, targetID uuid.UUID, targetType model.TargetType) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM helpful_votes
			WHERE voter_id = $1 AND target_id = $2 AND target_type = $3
		)`,
		voterID, targetID, targetType)
	return exists, err
}
