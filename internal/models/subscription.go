package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

// Subscription grants a user access to one plan for a fixed window. The composite
// unique index enforces at most one record per (user, plan) pair; re-subscribing
// reactivates the existing record instead of creating a second one.
type Subscription struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_user_plan" json:"user_id"`
	PlanID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_user_plan" json:"plan_id"`
	Status      string    `gorm:"size:20;not null;default:'active'" json:"status"`
	PurchasedAt time.Time `gorm:"not null" json:"purchased_at"`
	ExpiresAt   time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Plan        Plan      `gorm:"foreignKey:PlanID" json:"plan"`
}
