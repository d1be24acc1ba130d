package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/model"
)

func TestToggleHelpfulVoteFirstVote(t *testing.T) {
	repo, mock := newTestRepo(t)
	targetID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT author_id, helpful_count FROM content WHERE id = $1 AND kind = $2 FOR UPDATE")).
		WithArgs(targetID, model.TargetPost).
		WillReturnRows(sqlmock.NewRows([]string{"author_id", "helpful_count"}).AddRow(int64(2), 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM helpful_votes WHERE voter_id = $1 AND target_id = $2 AND target_type = $3")).
		WithArgs(int64(5), targetID, model.TargetPost).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO helpful_votes")).
		WithArgs(int64(5), targetID, model.TargetPost).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE content SET helpful_count = $1 WHERE id = $2")).
		WithArgs(1, targetID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	toggle, err := repo.ToggleHelpfulVote(context.Background(), 5, targetID, model.TargetPost)
	require.NoError(t, err)
	assert.True(t, toggle.Voted)
	assert.Equal(t, 0, toggle.PriorCount)
	assert.Equal(t, 1, toggle.VoteCount)
	assert.Equal(t, int64(2), toggle.AuthorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleHelpfulVoteUnvote(t *testing.T) {
	repo, mock := newTestRepo(t)
	targetID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT author_id, helpful_count FROM content WHERE id = $1 AND kind = $2 FOR UPDATE")).
		WithArgs(targetID, model.TargetComment).
		WillReturnRows(sqlmock.NewRows([]string{"author_id", "helpful_count"}).AddRow(int64(2), 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM helpful_votes WHERE voter_id = $1 AND target_id = $2 AND target_type = $3")).
		WithArgs(int64(5), targetID, model.TargetComment).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE content SET helpful_count = $1 WHERE id = $2")).
		WithArgs(2, targetID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	toggle, err := repo.ToggleHelpfulVote(context.Background(), 5, targetID, model.TargetComment)
	require.NoError(t, err)
	assert.False(t, toggle.Voted)
	assert.Equal(t, 3, toggle.PriorCount)
	assert.Equal(t, 2, toggle.VoteCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleHelpfulVoteLostInsertRace(t *testing.T) {
	repo, mock := newTestRepo(t)
	targetID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT author_id, helpful_count FROM content WHERE id = $1 AND kind = $2 FOR UPDATE")).
		WithArgs(targetID, model.TargetPost).
		WillReturnRows(sqlmock.NewRows([]string{"author_id", "helpful_count"}).AddRow(int64(2), 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM helpful_votes WHERE voter_id = $1 AND target_id = $2 AND target_type = $3")).
		WithArgs(int64(5), targetID, model.TargetPost).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO helpful_votes")).
		WithArgs(int64(5), targetID, model.TargetPost).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	toggle, err := repo.ToggleHelpfulVote(context.Background(), 5, targetID, model.TargetPost)
	require.NoError(t, err)
	assert.True(t, toggle.Voted)
	assert.Equal(t, 1, toggle.VoteCount, "count unchanged when the unique key already holds")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleHelpfulVoteUnknownTarget(t *testing.T) {
	repo, mock := newTestRepo(t)
	targetID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT author_id, helpful_count FROM content WHERE id = $1 AND kind = $2 FOR UPDATE")).
		WithArgs(targetID, model.TargetPost).
		WillReturnRows(sqlmock.NewRows([]string{"author_id", "helpful_count"}))
	mock.ExpectRollback()

	_, err := repo.ToggleHelpfulVote(context.Background(), 5, targetID, model.TargetPost)
	assert.ErrorIs(t, err, ErrContentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
