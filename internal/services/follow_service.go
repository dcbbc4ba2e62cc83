package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shubhampanchal18/fitplanhub/internal/identity"
	"github.com/shubhampanchal18/fitplanhub/internal/models"
)

var (
	ErrTrainerNotFound  = errors.New("trainer not found")
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this trainer")
	ErrNotFollowing     = errors.New("not following this trainer")
)

// FollowService owns the (user, trainer) follow edge set.
type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

func (s *FollowService) Follow(viewer identity.Viewer, trainerID uuid.UUID) error {
	var trainer models.User
	err := s.db.Where("id = ? AND role = ?", trainerID, models.RoleTrainer).First(&trainer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTrainerNotFound
		}
		return err
	}

	if trainer.ID == viewer.ID {
		return ErrSelfFollow
	}

	var existing models.Follow
	err = s.db.Where("user_id = ? AND trainer_id = ?", viewer.ID, trainerID).First(&existing).Error
	if err == nil {
		return ErrAlreadyFollowing
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	follow := models.Follow{
		ID:         uuid.New(),
		UserID:     viewer.ID,
		TrainerID:  trainerID,
		FollowedAt: time.Now(),
	}
	if err := s.db.Create(&follow).Error; err != nil {
		// Unique (user_id, trainer_id) index backstops concurrent follows.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyFollowing
		}
		return err
	}
	return nil
}

func (s *FollowService) Unfollow(viewer identity.Viewer, trainerID uuid.UUID) error {
	res := s.db.Where("user_id = ? AND trainer_id = ?", viewer.ID, trainerID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFollowing
	}
	return nil
}

// FollowedTrainerIDs feeds the feed composer.
func (s *FollowService) FollowedTrainerIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.Model(&models.Follow{}).
		Where("user_id = ?", userID).
		Pluck("trainer_id", &ids).Error
	return ids, err
}

func (s *FollowService) IsFollowing(userID, trainerID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.Follow{}).
		Where("user_id = ? AND trainer_id = ?", userID, trainerID).
		Count(&count).Error
	return count > 0, err
}

// ListFollowing returns the viewer's follows, newest first, trainers populated.
func (s *FollowService) ListFollowing(viewer identity.Viewer) ([]models.Follow, error) {
	var follows []models.Follow
	err := s.db.Preload("Trainer").
		Where("user_id = ?", viewer.ID).
		Order("followed_at DESC").
		Find(&follows).Error
	return follows, err
}
