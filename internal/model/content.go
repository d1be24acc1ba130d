package model

import (
	"time"

	"github.com/google/uuid"
)

// Content is the minimal view of a forum post or comment this service
// needs: who wrote it and how many helpful votes it currently shows.
// The forum app owns the bodies; we own the count.
type Content struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	AuthorID     int64      `json:"author_id" db:"author_id"`
	Kind         TargetType `json:"kind" db:"kind"`
	HelpfulCount int        `json:"helpful_count" db:"helpful_count"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}
