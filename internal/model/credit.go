package model

import (
	"time"

	"github.com/google/uuid"
)

// Reward rule names. Amounts live in config, not here.
const (
	RuleMarkHelpful      = "mark_helpful"
	RuleHelpfulFirst     = "helpful_click_first"
	RuleHelpfulSecond    = "helpful_click_second"
	RuleHelpfulThird     = "helpful_click_third"
	RuleContactUnlock    = "contact_unlock"
	RuleManualAdjustment = "manual_adjustment"
)

// RewardRule is a named credit amount with a human-readable trigger.
type RewardRule struct {
	Name    string `json:"name"`
	Amount  int    `json:"amount"` // positive magnitude; caller applies sign
	Trigger string `json:"trigger"`
}

type ReferenceType string

const (
	ReferencePost          ReferenceType = "post"
	ReferenceComment       ReferenceType = "comment"
	ReferenceContactUnlock ReferenceType = "contact_unlock"
	ReferenceAdmin         ReferenceType = "admin"
)

type CreditTransaction struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	UserID        int64         `json:"user_id" db:"user_id"`
	Amount        int           `json:"amount" db:"amount"` // positive = earn, negative = spend
	RuleName      string        `json:"rule_name" db:"rule_name"`
	ReferenceID   string        `json:"reference_id" db:"reference_id"`
	ReferenceType ReferenceType `json:"reference_type" db:"reference_type"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}
