package model

import (
	"time"

	"github.com/google/uuid"
)

type UnlockMethod string

const (
	UnlockMethodCredit  UnlockMethod = "credit"
	UnlockMethodNetwork UnlockMethod = "network"
)

// ContactUnlock is a permanent grant of visibility into another user's
// contact details. At most one row per (unlocker_id, unlocked_user_id);
// rows are never deleted.
type ContactUnlock struct {
	ID             uuid.UUID    `json:"id" db:"id"`
	UnlockerID     int64        `json:"unlocker_id" db:"unlocker_id"`
	UnlockedUserID int64        `json:"unlocked_user_id" db:"unlocked_user_id"`
	Method         UnlockMethod `json:"method" db:"method"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
}

type UnlockResult struct {
	UnlockID        uuid.UUID `json:"unlock_id"`
	AlreadyUnlocked bool      `json:"already_unlocked"`
	NewBalance      int       `json:"new_balance"`
}
