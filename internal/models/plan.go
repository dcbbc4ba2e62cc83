package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Plan is a priced training program published by a trainer. Description, duration
// and schedule are gated content: only subscribers see them (see internal/entitlement).
type Plan struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Description  string         `gorm:"type:text;not null" json:"description"`
	Price        float64        `gorm:"not null" json:"price"`
	DurationDays int            `gorm:"not null" json:"duration"`
	Schedule     datatypes.JSON `json:"schedule,omitempty"`
	TrainerID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"trainer_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Trainer      User           `gorm:"foreignKey:TrainerID" json:"-"`
}
