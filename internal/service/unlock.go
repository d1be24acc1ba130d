package service

import (
	"context"
	"errors"

	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/config"
	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/model"
	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/repository"
)

var ErrSelfUnlock = errors.New("cannot unlock own contact info")

// UnlockService gates contact information behind a one-time credit spend.
type UnlockService struct {
	repo *repository.Repository
	cfg  *config.Config
}

func NewUnlockService(repo *repository.Repository, cfg *config.Config) *UnlockService {
	return &UnlockService{repo: repo, cfg: cfg}
}

// UnlockCost returns the current price of a contact unlock: the settings
// table override when present, otherwise the configured default.
func (s *UnlockService) UnlockCost(ctx context.Context) int {
	cost, err := s.repo.GetSettingInt(ctx, config.SettingContactUnlockCost)
	if err != nil {
		return s.cfg.Rewards.ContactUnlockCost
	}
	return cost
}

// Unlock purchases permanent visibility into another user's contact info.
// A repeat call for the same pair is a no-op returning the existing
// unlock; the debit happens at most once.
func (s *UnlockService) Unlock(ctx context.Context, unlockerID, targetUserID int64) (*model.UnlockResult, error) {
	if unlockerID == targetUserID {
		return nil, ErrSelfUnlock
	}

	if _, err := s.repo.GetUser(ctx, targetUserID); err != nil {
		return nil, err
	}

	cost := s.UnlockCost(ctx)
	unlock, balance, already, err := s.repo.CreateContactUnlock(ctx, unlockerID, targetUserID, cost, model.UnlockMethodCredit)
	if err != nil {
		return nil, err
	}

	return &model.UnlockResult{
		UnlockID:        unlock.ID,
		AlreadyUnlocked: already,
		NewBalance:      balance,
	}, nil
}

// NetworkUnlock is the zero-cost variant triggered by an add-to-network
// action. It terminates in the same unlock row shape, method=network.
func (s *UnlockService) NetworkUnlock(ctx context.Context, unlockerID, targetUserID int64) (*model.UnlockResult, error) {
	if unlockerID == targetUserID {
		return nil, ErrSelfUnlock
	}

	if _, err := s.repo.GetUser(ctx, targetUserID); err != nil {
		return nil, err
	}

	unlock, balance, already, err := s.repo.CreateContactUnlock(ctx, unlockerID, targetUserID, 0, model.UnlockMethodNetwork)
	if err != nil {
		return nil, err
	}

	return &model.UnlockResult{
		UnlockID:        unlock.ID,
		AlreadyUnlocked: already,
		NewBalance:      balance,
	}, nil
}

// IsUnlocked reports whether unlocker already has access to the target's
// contact info.
func (s *UnlockService) IsUnlocked(ctx context.Context, unlockerID, targetUserID int64) (bool, error) {
	_, err := s.repo.GetContactUnlock(ctx, unlockerID, targetUserID)
	if err != nil {
		if errors.Is(err, repository.ErrUnlockNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListUnlocks returns everyone the user has unlocked.
func (s *UnlockService) ListUnlocks(ctx context.Context, unlockerID int64) ([]model.ContactUnlock, error) {
	return s.repo.ListContactUnlocks(ctx, unlockerID)
}
