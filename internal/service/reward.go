package service

import (
	"errors"

	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/config"
	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/model"
)

var ErrRuleNotFound = errors.New("reward rule not found")

// RewardEngine is a static lookup from rule name to credit amount. It has
// no state and no side effects; amounts come from config so reward tuning
// never touches control flow.
type RewardEngine struct {
	rules map[string]model.RewardRule
}

func NewRewardEngine(cfg config.RewardsConfig) *RewardEngine {
	rules := []model.RewardRule{
		{Name: model.RuleMarkHelpful, Amount: cfg.MarkHelpful, Trigger: "voter marks content helpful"},
		{Name: model.RuleHelpfulFirst, Amount: cfg.HelpfulClickFirst, Trigger: "author receives first helpful vote on content"},
		{Name: model.RuleHelpfulSecond, Amount: cfg.HelpfulClickSecond, Trigger: "author receives second helpful vote on content"},
		{Name: model.RuleHelpfulThird, Amount: cfg.HelpfulClickThird, Trigger: "author receives third or later helpful vote on content"},
	}

	table := make(map[string]model.RewardRule, len(rules))
	for _, rule := range rules {
		table[rule.Name] = rule
	}
	return &RewardEngine{rules: table}
}

func (e *RewardEngine) Resolve(name string) (model.RewardRule, error) {
	rule, ok := e.rules[name]
	if !ok {
		return model.RewardRule{}, ErrRuleNotFound
	}
	return rule, nil
}

// AuthorRule picks the author reward tier from the target's helpful count
// before the current vote: early engagement on new content pays more than
// later piling-on.
func (e *RewardEngine) AuthorRule(priorVoteCount int) string {
	switch priorVoteCount {
	case 0:
		return model.RuleHelpfulFirst
	case 1:
		return model.RuleHelpfulSecond
	default:
		return model.RuleHelpfulThird
	}
}
