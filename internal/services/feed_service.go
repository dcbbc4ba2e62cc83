package services

import (
	"gorm.io/gorm"

	"github.com/shubhampanchal18/fitplanhub/internal/dto"
	"github.com/shubhampanchal18/fitplanhub/internal/entitlement"
	"github.com/shubhampanchal18/fitplanhub/internal/identity"
	"github.com/shubhampanchal18/fitplanhub/internal/models"
)

// FeedService joins the follow graph with the plan catalog and annotates each
// item through the entitlement engine.
type FeedService struct {
	db      *gorm.DB
	follows *FollowService
	engine  *entitlement.Engine
}

func NewFeedService(db *gorm.DB, follows *FollowService, engine *entitlement.Engine) *FeedService {
	return &FeedService{db: db, follows: follows, engine: engine}
}

// Compose returns the plans of every trainer the viewer follows, newest first,
// each projected per the viewer's entitlements.
func (s *FeedService) Compose(viewer identity.Viewer) ([]dto.FeedItem, error) {
	trainerIDs, err := s.follows.FollowedTrainerIDs(viewer.ID)
	if err != nil {
		return nil, err
	}
	if len(trainerIDs) == 0 {
		return []dto.FeedItem{}, nil
	}

	var plans []models.Plan
	err = s.db.Preload("Trainer").
		Where("trainer_id IN ?", trainerIDs).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}

	accessible, err := s.engine.AccessiblePlanIDs(viewer)
	if err != nil {
		return nil, err
	}

	items := make([]dto.FeedItem, 0, len(plans))
	for i := range plans {
		_, subscribed := accessible[plans[i].ID]
		items = append(items, dto.FeedItem{
			PlanView:     entitlement.Project(&plans[i], subscribed),
			IsSubscribed: subscribed,
		})
	}
	return items, nil
}
