package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shubhampanchal18/fitplanhub/internal/identity"
	"github.com/shubhampanchal18/fitplanhub/internal/models"
)

var ErrAlreadySubscribed = errors.New("already subscribed to this plan")

// SubscriptionService owns the entitlement ledger: one record per (user, plan)
// pair, created on first subscribe and reactivated in place afterwards.
type SubscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

// Subscribe grants the viewer access to the plan for plan.DurationDays from
// now. The expiry is computed here and frozen: later duration edits do not
// touch already-granted windows. The reported bool is true when a new record
// was created, false when a lapsed one was reactivated.
func (s *SubscriptionService) Subscribe(viewer identity.Viewer, planID uuid.UUID) (*models.Subscription, bool, error) {
	var plan models.Plan
	if err := s.db.First(&plan, "id = ?", planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrPlanNotFound
		}
		return nil, false, err
	}

	now := time.Now()
	expiresAt := now.AddDate(0, 0, plan.DurationDays)

	// Reactivate an existing non-active (or lapsed-but-still-flagged-active)
	// record with one conditional UPDATE; the WHERE clause makes concurrent
	// re-subscribes race on the row instead of a read-then-write.
	res := s.db.Model(&models.Subscription{}).
		Where("user_id = ? AND plan_id = ? AND (status <> ? OR expires_at <= ?)",
			viewer.ID, planID, models.SubscriptionActive, now).
		Updates(map[string]interface{}{
			"status":       models.SubscriptionActive,
			"purchased_at": now,
			"expires_at":   expiresAt,
		})
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		sub, err := s.find(viewer.ID, planID)
		return sub, false, err
	}

	// No reactivatable record: either a live subscription or none at all.
	var existing models.Subscription
	err := s.db.Where("user_id = ? AND plan_id = ?", viewer.ID, planID).First(&existing).Error
	if err == nil {
		return nil, false, ErrAlreadySubscribed
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	sub := models.Subscription{
		ID:          uuid.New(),
		UserID:      viewer.ID,
		PlanID:      planID,
		Status:      models.SubscriptionActive,
		PurchasedAt: now,
		ExpiresAt:   expiresAt,
	}
	if err := s.db.Create(&sub).Error; err != nil {
		// The unique (user_id, plan_id) index backstops check-then-insert races.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, ErrAlreadySubscribed
		}
		return nil, false, err
	}

	created, err := s.find(viewer.ID, planID)
	return created, true, err
}

// ListActive returns the viewer's active subscriptions, newest purchase first,
// with plans populated for the my-subscriptions listing.
func (s *SubscriptionService) ListActive(viewer identity.Viewer) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := s.db.Preload("Plan").Preload("Plan.Trainer").
		Where("user_id = ? AND status = ?", viewer.ID, models.SubscriptionActive).
		Order("purchased_at DESC").
		Find(&subs).Error
	return subs, err
}

func (s *SubscriptionService) find(userID, planID uuid.UUID) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.db.Preload("Plan").Preload("Plan.Trainer").
		Where("user_id = ? AND plan_id = ?", userID, planID).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}
