package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TrainerSummary is the public slice of a trainer attached to plan responses.
type TrainerSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// PlanView is the viewer-specific projection of a plan. Gated fields are pointers
// so a redacted view omits them from the JSON entirely instead of sending zero
// values; a missing trainer row degrades to a null trainer, never an error.
type PlanView struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Price       float64         `json:"price"`
	Trainer     *TrainerSummary `json:"trainer,omitempty"`
	HasAccess   bool            `json:"has_access"`
	Description *string         `json:"description,omitempty"`
	Duration    *int            `json:"duration,omitempty"`
	Schedule    datatypes.JSON  `json:"schedule,omitempty"`
	CreatedAt   *time.Time      `json:"created_at,omitempty"`
}

// FeedItem carries an explicit is_subscribed flag next to the projection. The two
// are equal today, but future entitlement sources (trials) could diverge.
type FeedItem struct {
	PlanView
	IsSubscribed bool `json:"is_subscribed"`
}

type CreatePlanRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       *float64       `json:"price"`
	Duration    *int           `json:"duration"`
	Schedule    datatypes.JSON `json:"schedule,omitempty"`
}

// UpdatePlanRequest uses pointer fields so "absent" and "zero" are distinguishable:
// price 0 is a valid update, while an omitted price leaves the plan untouched.
type UpdatePlanRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Price       *float64       `json:"price"`
	Duration    *int           `json:"duration"`
	Schedule    datatypes.JSON `json:"schedule,omitempty"`
}
