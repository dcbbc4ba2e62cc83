package models

import (
	"time"

	"github.com/google/uuid"
)

// Follow is a unidirectional (user -> trainer) edge driving the personalized feed.
// Unique per pair; a duplicate follow is an error, not a no-op.
type Follow struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follows_user_trainer" json:"user_id"`
	TrainerID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follows_user_trainer" json:"trainer_id"`
	FollowedAt time.Time `gorm:"not null" json:"followed_at"`
	Trainer    User      `gorm:"foreignKey:TrainerID" json:"trainer,omitempty"`
}
