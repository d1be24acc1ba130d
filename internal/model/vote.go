package model

import (
	"time"

	"github.com/google/uuid"
)

type TargetType string

const (
	TargetPost    TargetType = "post"
	TargetComment TargetType = "comment"
)

func (t TargetType) Valid() bool {
	return t == TargetPost || t == TargetComment
}

// HelpfulVote is a per-(voter, target) endorsement. At most one row per
// (voter_id, target_id, target_type); created on vote, deleted on un-vote.
type HelpfulVote struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	VoterID    int64      `json:"voter_id" db:"voter_id"`
	TargetID   uuid.UUID  `json:"target_id" db:"target_id"`
	TargetType TargetType `json:"target_type" db:"target_type"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// VoteResult is what a toggle reports back to the UI.
type VoteResult struct {
	Voted     bool `json:"voted"`
	VoteCount int  `json:"vote_count"`
}
