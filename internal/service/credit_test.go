package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/model"
	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/repository"
)

func newCreditService(repo *repository.Repository) *CreditService {
	return NewCreditService(repo, NewRewardEngine(testRewardsConfig()))
}

func TestEarnResolvesRuleAmount(t *testing.T) {
	repo, mock := newTestRepo(t)
	svc := newCreditService(repo)

	expectEarn(mock, 7, 2, 3, model.RuleHelpfulFirst, "ref", model.ReferencePost)

	txID, err := svc.Earn(context.Background(), 7, model.RuleHelpfulFirst, "ref", model.ReferencePost)
	require.NoError(t, err)
	assert.NotEqual(t, txID.String(), "00000000-0000-0000-0000-000000000000")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEarnUnknownRuleWritesNothing(t *testing.T) {
	repo, mock := newTestRepo(t)
	svc := newCreditService(repo)

	_, err := svc.Earn(context.Background(), 7, "no_such_rule", "ref", model.ReferencePost)
	assert.ErrorIs(t, err, ErrRuleNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpendAppliesNegativeSign(t *testing.T) {
	repo, mock := newTestRepo(t)
	svc := newCreditService(repo)

	expectEarn(mock, 7, 10, -4, model.RuleContactUnlock, "9", model.ReferenceContactUnlock)

	_, err := svc.Spend(context.Background(), 7, 4, model.RuleContactUnlock, "9", model.ReferenceContactUnlock)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpendInsufficientPropagates(t *testing.T) {
	repo, mock := newTestRepo(t)
	svc := newCreditService(repo)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT credit_balance FROM users WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"credit_balance"}).AddRow(1))
	mock.ExpectRollback()

	_, err := svc.Spend(context.Background(), 7, 4, model.RuleContactUnlock, "9", model.ReferenceContactUnlock)
	assert.ErrorIs(t, err, repository.ErrInsufficientCredits)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCanAfford(t *testing.T) {
	repo, mock := newTestRepo(t)
	svc := newCreditService(repo)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT credit_balance FROM users WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"credit_balance"}).AddRow(5))

	ok, err := svc.CanAfford(context.Background(), 7, 5)
	require.NoError(t, err)
	assert.True(t, ok)
}
