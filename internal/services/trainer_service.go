package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shubhampanchal18/fitplanhub/internal/dto"
	"github.com/shubhampanchal18/fitplanhub/internal/entitlement"
	"github.com/shubhampanchal18/fitplanhub/internal/identity"
	"github.com/shubhampanchal18/fitplanhub/internal/models"
)

type TrainerService struct {
	db      *gorm.DB
	engine  *entitlement.Engine
	follows *FollowService
}

func NewTrainerService(db *gorm.DB, engine *entitlement.Engine, follows *FollowService) *TrainerService {
	return &TrainerService{db: db, engine: engine, follows: follows}
}

func (s *TrainerService) List() ([]dto.TrainerPublic, error) {
	var trainers []models.User
	if err := s.db.Where("role = ?", models.RoleTrainer).Find(&trainers).Error; err != nil {
		return nil, err
	}

	out := make([]dto.TrainerPublic, 0, len(trainers))
	for _, t := range trainers {
		out = append(out, publicTrainer(&t))
	}
	return out, nil
}

// Profile returns the trainer, their plans newest-first projected for the
// viewer, and whether the viewer follows them (always false for anonymous).
func (s *TrainerService) Profile(viewer identity.Viewer, trainerID uuid.UUID) (*dto.TrainerProfileResponse, error) {
	var trainer models.User
	err := s.db.Where("id = ? AND role = ?", trainerID, models.RoleTrainer).First(&trainer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}

	var plans []models.Plan
	err = s.db.Preload("Trainer").
		Where("trainer_id = ?", trainerID).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}

	accessible, err := s.engine.AccessiblePlanIDs(viewer)
	if err != nil {
		return nil, err
	}

	isFollowing := false
	if !viewer.IsAnonymous() {
		isFollowing, err = s.follows.IsFollowing(viewer.ID, trainerID)
		if err != nil {
			return nil, err
		}
	}

	return &dto.TrainerProfileResponse{
		Trainer:     publicTrainer(&trainer),
		Plans:       entitlement.ProjectAll(plans, accessible),
		IsFollowing: isFollowing,
	}, nil
}

func publicTrainer(u *models.User) dto.TrainerPublic {
	return dto.TrainerPublic{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
