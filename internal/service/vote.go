package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/model"
	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/repository"
)

var ErrSelfVote = errors.New("cannot mark own content helpful")
var ErrInvalidTarget = errors.New("invalid vote target")

// VoteService tracks helpful votes and pays out the associated rewards.
type VoteService struct {
	repo    *repository.Repository
	credits *CreditService
	rewards *RewardEngine
}

func NewVoteService(repo *repository.Repository, credits *CreditService, rewards *RewardEngine) *VoteService {
	return &VoteService{repo: repo, credits: credits, rewards: rewards}
}

// ToggleHelpful flips the voter's helpful vote on a post or comment. A
// first-time vote pays the voter the mark_helpful reward and the author a
// tier picked from the target's prior vote count. Un-voting removes the
// vote and decrements the count but never claws back rewards already
// paid — that asymmetry is deliberate.
func (s *VoteService) ToggleHelpful(ctx context.Context, voterID int64, targetID uuid.UUID, targetType model.TargetType) (*model.VoteResult, error) {
	if !targetType.Valid() {
		return nil, ErrInvalidTarget
	}

	content, err := s.repo.GetContent(ctx, targetID, targetType)
	if err != nil {
		return nil, err
	}
	if content.AuthorID == voterID {
		return nil, ErrSelfVote
	}

	toggle, err := s.repo.ToggleHelpfulVote(ctx, voterID, targetID, targetType)
	if err != nil {
		return nil, err
	}

	if toggle.Voted && toggle.VoteCount > toggle.PriorCount {
		s.dispatchRewards(ctx, voterID, toggle, targetID, targetType)
	}

	return &model.VoteResult{Voted: toggle.Voted, VoteCount: toggle.VoteCount}, nil
}

// dispatchRewards pays the voter and the author for a first-time vote.
// The vote itself has already committed; a failed payout is logged rather
// than unwinding the vote.
func (s *VoteService) dispatchRewards(ctx context.Context, voterID int64, toggle *repository.VoteToggle, targetID uuid.UUID, targetType model.TargetType) {
	refType := model.ReferenceType(targetType)

	if _, err := s.credits.Earn(ctx, voterID, model.RuleMarkHelpful, targetID.String(), refType); err != nil {
		log.WithError(err).WithField("voter_id", voterID).Error("failed to credit voter reward")
	}

	authorRule := s.rewards.AuthorRule(toggle.PriorCount)
	if _, err := s.credits.Earn(ctx, toggle.AuthorID, authorRule, targetID.String(), refType); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"author_id": toggle.AuthorID,
			"rule":      authorRule,
		}).Error("failed to credit author reward")
	}
}

// RegisterContent records a freshly published post or comment so votes on
// it can resolve its author. The forum app calls this on publish.
func (s *VoteService) RegisterContent(ctx context.Context, authorID int64, kind model.TargetType) (*model.Content, error) {
	if !kind.Valid() {
		return nil, ErrInvalidTarget
	}
	content := &model.Content{AuthorID: authorID, Kind: kind}
	if err := s.repo.CreateContent(ctx, content); err != nil {
		return nil, err
	}
	return content, nil
}

// HasVoted reports the voter's current vote state on a target.
func (s *VoteService) HasVoted(ctx context.Context, voterID int64, targetID uuid.UUID, targetType model.TargetType) (bool, error) {
	return s.repo.HasVoted(ctx, voterID, targetID, targetType)
}
