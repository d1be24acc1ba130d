package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"

	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/config"
	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/model"
	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/repository"
)

var ErrZeroAdjustment = errors.New("adjustment amount must be non-zero")

type AdminService struct {
	repo *repository.Repository
}

func NewAdminService(repo *repository.Repository) *AdminService {
	return &AdminService{repo: repo}
}

func (s *AdminService) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.Role == model.RoleAdmin, nil
}

func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]model.User, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return s.repo.ListUsers(ctx, limit, offset)
}

// AdjustCredits applies a manual signed correction to a user's ledger.
// Negative adjustments still respect the non-negative balance floor.
func (s *AdminService) AdjustCredits(ctx context.Context, adminID, userID int64, amount int) (uuid.UUID, error) {
	if amount == 0 {
		return uuid.Nil, ErrZeroAdjustment
	}
	txID, _, err := s.repo.ApplyCredit(ctx, userID, amount, model.RuleManualAdjustment,
		strconv.FormatInt(adminID, 10), model.ReferenceAdmin)
	return txID, err
}

func (s *AdminService) GetUserTransactions(ctx context.Context, userID int64, limit, offset int) ([]model.CreditTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.GetCreditTransactions(ctx, userID, limit, offset)
}

func (s *AdminService) GetUnlockCost(ctx context.Context) (int, error) {
	return s.repo.GetSettingInt(ctx, config.SettingContactUnlockCost)
}

func (s *AdminService) SetUnlockCost(ctx context.Context, cost int) error {
	return s.repo.SetSetting(ctx, config.SettingContactUnlockCost, strconv.Itoa(cost))
}

// VerifyLedger checks the global invariant that a user's cached balance is
// exactly the fold of their transaction log.
func (s *AdminService) VerifyLedger(ctx context.Context, userID int64) (bool, error) {
	balance, err := s.repo.GetCreditBalance(ctx, userID)
	if err != nil {
		return false, err
	}
	sum, err := s.repo.SumCreditTransactions(ctx, userID)
	if err != nil {
		return false, err
	}
	return balance == sum, nil
}
