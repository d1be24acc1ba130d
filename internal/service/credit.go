package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/model"
	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/repository"
)

// CreditService is the ledger: every credit a user earns or spends flows
// through here as one immutable signed transaction.
type CreditService struct {
	repo    *repository.Repository
	rewards *RewardEngine
}

func NewCreditService(repo *repository.Repository, rewards *RewardEngine) *CreditService {
	return &CreditService{repo: repo, rewards: rewards}
}

// GetBalance returns the user's current spendable credits. Never negative.
func (s *CreditService) GetBalance(ctx context.Context, userID int64) (int, error) {
	return s.repo.GetCreditBalance(ctx, userID)
}

// Earn appends a positive transaction with the amount of the named rule.
// There is no upper bound on a balance.
func (s *CreditService) Earn(ctx context.Context, userID int64, ruleName, referenceID string, referenceType model.ReferenceType) (uuid.UUID, error) {
	rule, err := s.rewards.Resolve(ruleName)
	if err != nil {
		return uuid.Nil, err
	}

	txID, _, err := s.repo.ApplyCredit(ctx, userID, rule.Amount, rule.Name, referenceID, referenceType)
	return txID, err
}

// Spend appends a negative transaction of the given positive magnitude.
// Fails with repository.ErrInsufficientCredits when the balance cannot
// cover it, in which case nothing is recorded.
func (s *CreditService) Spend(ctx context.Context, userID int64, amount int, ruleName, referenceID string, referenceType model.ReferenceType) (uuid.UUID, error) {
	txID, _, err := s.repo.ApplyCredit(ctx, userID, -amount, ruleName, referenceID, referenceType)
	return txID, err
}

// GetTransactions returns the user's credit history.
func (s *CreditService) GetTransactions(ctx context.Context, userID int64, limit, offset int) ([]model.CreditTransaction, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.GetCreditTransactions(ctx, userID, limit, offset)
}

// CanAfford checks whether the user has at least amount credits.
func (s *CreditService) CanAfford(ctx context.Context, userID int64, amount int) (bool, error) {
	balance, err := s.repo.GetCreditBalance(ctx, userID)
	if err != nil {
		return false, err
	}
	return balance >= amount, nil
}
