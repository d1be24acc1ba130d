package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/config"
	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/model"
	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/repository"
)

func testConfig() *config.Config {
	return &config.Config{Rewards: testRewardsConfig()}
}

func expectGetUser(mock sqlmock.Sqlmock, userID int64) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM users WHERE id = $1")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "password_hash", "display_name", "role",
			"contact_email", "contact_phone", "credit_balance", "created_at", "updated_at",
		}).AddRow(userID, "u@example.com", "x", "U", model.RoleFieldRep, nil, nil, 5, time.Now(), time.Now()))
}

func expectNoUnlockCostSetting(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM settings WHERE key = $1")).
		WithArgs(config.SettingContactUnlockCost).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
}

func TestUnlockSpendsConfiguredCost(t *testing.T) {
	repo, mock := newTestRepo(t)
	svc := NewUnlockService(repo, testConfig())
	unlockID := uuid.New()

	expectGetUser(mock, 2)
	expectNoUnlockCostSetting(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO contact_unlocks")).
		WithArgs(int64(1), int64(2), model.UnlockMethodCredit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(unlockID, time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT credit_balance FROM users WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"credit_balance"}).AddRow(5))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET credit_balance = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs(0, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO credit_transactions")).
		WithArgs(int64(1), -5, model.RuleContactUnlock, "2", model.ReferenceContactUnlock).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := svc.Unlock(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.False(t, result.AlreadyUnlocked)
	assert.Equal(t, unlockID, result.UnlockID)
	assert.Equal(t, 0, result.NewBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnlockUsesSettingsOverride(t *testing.T) {
	repo, mock := newTestRepo(t)
	svc := NewUnlockService(repo, testConfig())

	expectGetUser(mock, 2)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM settings WHERE key = $1")).
		WithArgs(config.SettingContactUnlockCost).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("2"))
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO contact_unlocks")).
		WithArgs(int64(1), int64(2), model.UnlockMethodCredit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(uuid.New(), time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT credit_balance FROM users WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"credit_balance"}).AddRow(5))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET credit_balance = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs(3, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO credit_transactions")).
		WithArgs(int64(1), -2, model.RuleContactUnlock, "2", model.ReferenceContactUnlock).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := svc.Unlock(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, result.NewBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnlockInsufficientCredits(t *testing.T) {
	repo, mock := newTestRepo(t)
	svc := NewUnlockService(repo, testConfig())

	expectGetUser(mock, 4)
	expectNoUnlockCostSetting(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO contact_unlocks")).
		WithArgs(int64(3), int64(4), model.UnlockMethodCredit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(uuid.New(), time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT credit_balance FROM users WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"credit_balance"}).AddRow(0))
	mock.ExpectRollback()

	_, err := svc.Unlock(context.Background(), 3, 4)
	assert.ErrorIs(t, err, repository.ErrInsufficientCredits)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnlockRejectsSelf(t *testing.T) {
	repo, _ := newTestRepo(t)
	svc := NewUnlockService(repo, testConfig())

	_, err := svc.Unlock(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrSelfUnlock)
}

func TestUnlockUnknownTarget(t *testing.T) {
	repo, mock := newTestRepo(t)
	svc := NewUnlockService(repo, testConfig())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM users WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Unlock(context.Background(), 1, 99)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestNetworkUnlockIsFree(t *testing.T) {
	repo, mock := newTestRepo(t)
	svc := NewUnlockService(repo, testConfig())
	unlockID := uuid.New()

	expectGetUser(mock, 2)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO contact_unlocks")).
		WithArgs(int64(1), int64(2), model.UnlockMethodNetwork).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(unlockID, time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT credit_balance FROM users WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"credit_balance"}).AddRow(7))
	mock.ExpectCommit()

	result, err := svc.NetworkUnlock(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 7, result.NewBalance, "network unlock never debits")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUnlocked(t *testing.T) {
	repo, mock := newTestRepo(t)
	svc := NewUnlockService(repo, testConfig())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM contact_unlocks WHERE unlocker_id = $1 AND unlocked_user_id = $2")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "unlocker_id", "unlocked_user_id", "method", "created_at"}).
			AddRow(uuid.New(), int64(1), int64(2), model.UnlockMethodCredit, time.Now()))

	unlocked, err := svc.IsUnlocked(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, unlocked)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM contact_unlocks WHERE unlocker_id = $1 AND unlocked_user_id = $2")).
		WithArgs(int64(1), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	unlocked, err = svc.IsUnlocked(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.False(t, unlocked)
}
