package dto

import (
	"time"

	"github.com/google/uuid"
)

// TrainerPublic is the trainer shape for the trainer list and profile endpoints.
type TrainerPublic struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type TrainerProfileResponse struct {
	Trainer     TrainerPublic `json:"trainer"`
	Plans       []PlanView    `json:"plans"`
	IsFollowing bool          `json:"is_following"`
}
