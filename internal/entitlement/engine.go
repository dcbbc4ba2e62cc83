// Package entitlement is the single source of truth for plan access: every
// surface that returns plan data (catalog list, single fetch, feed, trainer
// profile) asks this package whether the viewer may see full content and lets
// Project shape the response. No handler re-derives access or field selection.
package entitlement

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shubhampanchal18/fitplanhub/internal/dto"
	"github.com/shubhampanchal18/fitplanhub/internal/identity"
	"github.com/shubhampanchal18/fitplanhub/internal/models"
)

type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// HasAccess reports whether the viewer may see the plan's gated content: an
// active subscription whose window has not elapsed. A record still flagged
// active past its expires_at does not grant access. Role is irrelevant; a
// trainer gets no bypass for their own plans.
func (e *Engine) HasAccess(viewer identity.Viewer, planID uuid.UUID) (bool, error) {
	if viewer.IsAnonymous() {
		return false, nil
	}

	var count int64
	err := e.db.Model(&models.Subscription{}).
		Where("user_id = ? AND plan_id = ? AND status = ? AND expires_at > ?",
			viewer.ID, planID, models.SubscriptionActive, time.Now()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AccessiblePlanIDs is the batch form of HasAccess for listings: one query for
// all plans the viewer currently has access to.
func (e *Engine) AccessiblePlanIDs(viewer identity.Viewer) (map[uuid.UUID]struct{}, error) {
	if viewer.IsAnonymous() {
		return map[uuid.UUID]struct{}{}, nil
	}

	var planIDs []uuid.UUID
	err := e.db.Model(&models.Subscription{}).
		Where("user_id = ? AND status = ? AND expires_at > ?",
			viewer.ID, models.SubscriptionActive, time.Now()).
		Pluck("plan_id", &planIDs).Error
	if err != nil {
		return nil, err
	}

	set := make(map[uuid.UUID]struct{}, len(planIDs))
	for _, id := range planIDs {
		set[id] = struct{}{}
	}
	return set, nil
}

// Project shapes a plan for a viewer. With access the full plan is returned;
// without it the gated fields (description, duration, schedule, created_at)
// are left nil so they never reach the wire, not even as zero values.
func Project(plan *models.Plan, access bool) dto.PlanView {
	view := dto.PlanView{
		ID:        plan.ID,
		Title:     plan.Title,
		Price:     plan.Price,
		Trainer:   trainerSummary(plan),
		HasAccess: access,
	}

	if access {
		view.Description = &plan.Description
		view.Duration = &plan.DurationDays
		view.Schedule = plan.Schedule
		view.CreatedAt = &plan.CreatedAt
	}
	return view
}

// ProjectAll projects a slice of plans against a precomputed accessible set.
func ProjectAll(plans []models.Plan, accessible map[uuid.UUID]struct{}) []dto.PlanView {
	views := make([]dto.PlanView, 0, len(plans))
	for i := range plans {
		_, ok := accessible[plans[i].ID]
		views = append(views, Project(&plans[i], ok))
	}
	return views
}

// trainerSummary degrades to nil when the trainer row is gone; the plan
// response must not fail on a missing parent.
func trainerSummary(plan *models.Plan) *dto.TrainerSummary {
	if plan.Trainer.ID == uuid.Nil {
		return nil
	}
	return &dto.TrainerSummary{
		ID:    plan.Trainer.ID,
		Name:  plan.Trainer.Name,
		Email: plan.Trainer.Email,
	}
}
