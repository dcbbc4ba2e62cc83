package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shubhampanchal18/fitplanhub/internal/dto"
	"github.com/shubhampanchal18/fitplanhub/internal/entitlement"
	"github.com/shubhampanchal18/fitplanhub/internal/identity"
	"github.com/shubhampanchal18/fitplanhub/internal/models"
)

var (
	ErrPlanNotFound     = errors.New("plan not found")
	ErrNotPlanOwner     = errors.New("you do not own this plan")
	ErrMissingFields    = errors.New("title, description, price and duration are required")
	ErrInvalidPrice     = errors.New("price must be zero or greater")
	ErrInvalidDuration  = errors.New("duration must be at least one day")
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrEmptyDescription = errors.New("description cannot be empty")
)

// PlanService owns plan CRUD and ownership checks; all response shaping is
// delegated to the entitlement engine.
type PlanService struct {
	db     *gorm.DB
	engine *entitlement.Engine
}

func NewPlanService(db *gorm.DB, engine *entitlement.Engine) *PlanService {
	return &PlanService{db: db, engine: engine}
}

// List returns every plan newest-first, projected for the viewer.
func (s *PlanService) List(viewer identity.Viewer) ([]dto.PlanView, error) {
	var plans []models.Plan
	if err := s.db.Preload("Trainer").Order("created_at DESC").Find(&plans).Error; err != nil {
		return nil, err
	}

	accessible, err := s.engine.AccessiblePlanIDs(viewer)
	if err != nil {
		return nil, err
	}
	return entitlement.ProjectAll(plans, accessible), nil
}

func (s *PlanService) Get(viewer identity.Viewer, planID uuid.UUID) (*dto.PlanView, error) {
	var plan models.Plan
	if err := s.db.Preload("Trainer").First(&plan, "id = ?", planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	access, err := s.engine.HasAccess(viewer, plan.ID)
	if err != nil {
		return nil, err
	}

	view := entitlement.Project(&plan, access)
	return &view, nil
}

func (s *PlanService) Create(viewer identity.Viewer, req *dto.CreatePlanRequest) (*models.Plan, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" || req.Price == nil || req.Duration == nil {
		return nil, ErrMissingFields
	}
	if *req.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if *req.Duration < 1 {
		return nil, ErrInvalidDuration
	}

	plan := models.Plan{
		ID:           uuid.New(),
		Title:        title,
		Description:  description,
		Price:        *req.Price,
		DurationDays: *req.Duration,
		Schedule:     req.Schedule,
		TrainerID:    viewer.ID,
	}

	if err := s.db.Create(&plan).Error; err != nil {
		return nil, err
	}

	return s.reload(plan.ID)
}

// Update applies a partial patch: only fields present in the request are
// written, so price 0 is applied while an omitted price is left alone. Title
// and description cannot be blanked; an explicit empty string is rejected.
func (s *PlanService) Update(viewer identity.Viewer, planID uuid.UUID, req *dto.UpdatePlanRequest) (*models.Plan, error) {
	var plan models.Plan
	if err := s.db.First(&plan, "id = ?", planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	if plan.TrainerID != viewer.ID {
		return nil, ErrNotPlanOwner
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrEmptyTitle
		}
		updates["title"] = title
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, ErrEmptyDescription
		}
		updates["description"] = description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrInvalidPrice
		}
		updates["price"] = *req.Price
	}
	if req.Duration != nil {
		if *req.Duration < 1 {
			return nil, ErrInvalidDuration
		}
		updates["duration_days"] = *req.Duration
	}
	if req.Schedule != nil {
		updates["schedule"] = req.Schedule
	}

	if len(updates) > 0 {
		if err := s.db.Model(&plan).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.reload(plan.ID)
}

// Delete removes the plan and, in the same transaction, every subscription
// referencing it, so no orphaned entitlements survive.
func (s *PlanService) Delete(viewer identity.Viewer, planID uuid.UUID) error {
	var plan models.Plan
	if err := s.db.First(&plan, "id = ?", planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlanNotFound
		}
		return err
	}

	if plan.TrainerID != viewer.ID {
		return ErrNotPlanOwner
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", planID).Delete(&models.Subscription{}).Error; err != nil {
			return err
		}
		return tx.Delete(&plan).Error
	})
}

func (s *PlanService) reload(planID uuid.UUID) (*models.Plan, error) {
	var plan models.Plan
	if err := s.db.Preload("Trainer").First(&plan, "id = ?", planID).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// IsPlanValidationError reports whether err is one of the plan input errors
// that should surface as a 400 rather than a 500.
func IsPlanValidationError(err error) bool {
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidDuration) ||
		errors.Is(err, ErrEmptyTitle) ||
		errors.Is(err, ErrEmptyDescription)
}
