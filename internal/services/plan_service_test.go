package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubhampanchal18/fitplanhub/internal/dto"
	"github.com/shubhampanchal18/fitplanhub/internal/identity"
	"github.com/shubhampanchal18/fitplanhub/internal/models"
)

func TestPlanService_Create(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPlanService(db)
	trainer := createTestUser(t, db, models.RoleTrainer)
	viewer := identity.FromUser(trainer)

	valid := func() *dto.CreatePlanRequest {
		return &dto.CreatePlanRequest{
			Title:       "5K Plan",
			Description: "Couch to 5K",
			Price:       ptr(20.0),
			Duration:    ptr(30),
		}
	}

	t.Run("success", func(t *testing.T) {
		plan, err := svc.Create(viewer, valid())
		require.NoError(t, err)
		assert.Equal(t, trainer.ID, plan.TrainerID)
		assert.Equal(t, "5K Plan", plan.Title)
		assert.Equal(t, trainer.ID, plan.Trainer.ID, "trainer populated")
	})

	t.Run("free plan is allowed", func(t *testing.T) {
		req := valid()
		req.Price = ptr(0.0)
		plan, err := svc.Create(viewer, req)
		require.NoError(t, err)
		assert.Zero(t, plan.Price)
	})

	t.Run("missing fields", func(t *testing.T) {
		req := valid()
		req.Title = " "
		_, err := svc.Create(viewer, req)
		assert.ErrorIs(t, err, ErrMissingFields)

		req = valid()
		req.Price = nil
		_, err = svc.Create(viewer, req)
		assert.ErrorIs(t, err, ErrMissingFields)

		req = valid()
		req.Duration = nil
		_, err = svc.Create(viewer, req)
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("negative price", func(t *testing.T) {
		req := valid()
		req.Price = ptr(-1.0)
		_, err := svc.Create(viewer, req)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("zero duration", func(t *testing.T) {
		req := valid()
		req.Duration = ptr(0)
		_, err := svc.Create(viewer, req)
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})
}

func TestPlanService_ListAndGet(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPlanService(db)
	trainer := createTestUser(t, db, models.RoleTrainer)

	now := time.Now()
	oldest := createTestPlan(t, db, trainer, "Oldest", now.Add(-2*time.Hour))
	middle := createTestPlan(t, db, trainer, "Middle", now.Add(-time.Hour))
	newest := createTestPlan(t, db, trainer, "Newest", now)

	t.Run("list is newest first and redacted for anonymous", func(t *testing.T) {
		views, err := svc.List(identity.Anonymous())
		require.NoError(t, err)

		require.Len(t, views, 3)
		assert.Equal(t, newest.ID, views[0].ID)
		assert.Equal(t, middle.ID, views[1].ID)
		assert.Equal(t, oldest.ID, views[2].ID)

		for _, v := range views {
			assert.False(t, v.HasAccess)
			assert.Nil(t, v.Description)
			assert.Nil(t, v.Duration)
			assert.Nil(t, v.CreatedAt)
			require.NotNil(t, v.Trainer)
			assert.Equal(t, trainer.ID, v.Trainer.ID)
		}
	})

	t.Run("subscriber sees full content in list", func(t *testing.T) {
		user := createTestUser(t, db, models.RoleUser)
		sub := models.Subscription{
			ID: uuid.New(), UserID: user.ID, PlanID: newest.ID,
			Status: models.SubscriptionActive, PurchasedAt: now, ExpiresAt: now.Add(30 * 24 * time.Hour),
		}
		require.NoError(t, db.Create(&sub).Error)

		views, err := svc.List(identity.FromUser(user))
		require.NoError(t, err)

		assert.True(t, views[0].HasAccess)
		assert.NotNil(t, views[0].Description)
		assert.False(t, views[1].HasAccess)
		assert.Nil(t, views[1].Description)
	})

	t.Run("get unknown plan", func(t *testing.T) {
		_, err := svc.Get(identity.Anonymous(), uuid.New())
		assert.ErrorIs(t, err, ErrPlanNotFound)
	})

	t.Run("get projects per viewer", func(t *testing.T) {
		view, err := svc.Get(identity.Anonymous(), newest.ID)
		require.NoError(t, err)
		assert.False(t, view.HasAccess)
		assert.Nil(t, view.Description)
	})
}

func TestPlanService_Update(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPlanService(db)
	trainer := createTestUser(t, db, models.RoleTrainer)
	other := createTestUser(t, db, models.RoleTrainer)
	viewer := identity.FromUser(trainer)

	t.Run("unknown plan", func(t *testing.T) {
		_, err := svc.Update(viewer, uuid.New(), &dto.UpdatePlanRequest{Title: ptr("New")})
		assert.ErrorIs(t, err, ErrPlanNotFound)
	})

	t.Run("non-owner is forbidden and the plan stays unchanged", func(t *testing.T) {
		plan := createTestPlan(t, db, trainer, "Original", time.Now())

		_, err := svc.Update(identity.FromUser(other), plan.ID, &dto.UpdatePlanRequest{Title: ptr("Hijacked")})
		assert.ErrorIs(t, err, ErrNotPlanOwner)

		var reloaded models.Plan
		require.NoError(t, db.First(&reloaded, "id = ?", plan.ID).Error)
		assert.Equal(t, "Original", reloaded.Title)
	})

	t.Run("only supplied fields change, zero price applies", func(t *testing.T) {
		plan := createTestPlan(t, db, trainer, "Priced Plan", time.Now())

		updated, err := svc.Update(viewer, plan.ID, &dto.UpdatePlanRequest{Price: ptr(0.0)})
		require.NoError(t, err)
		assert.Zero(t, updated.Price)
		assert.Equal(t, "Priced Plan", updated.Title)
		assert.Equal(t, plan.DurationDays, updated.DurationDays)
	})

	t.Run("empty title and description are rejected", func(t *testing.T) {
		plan := createTestPlan(t, db, trainer, "Keep Me", time.Now())

		_, err := svc.Update(viewer, plan.ID, &dto.UpdatePlanRequest{Title: ptr("")})
		assert.ErrorIs(t, err, ErrEmptyTitle)

		_, err = svc.Update(viewer, plan.ID, &dto.UpdatePlanRequest{Description: ptr("  ")})
		assert.ErrorIs(t, err, ErrEmptyDescription)

		var reloaded models.Plan
		require.NoError(t, db.First(&reloaded, "id = ?", plan.ID).Error)
		assert.Equal(t, "Keep Me", reloaded.Title)
	})

	t.Run("invalid duration rejected", func(t *testing.T) {
		plan := createTestPlan(t, db, trainer, "Duration Plan", time.Now())
		_, err := svc.Update(viewer, plan.ID, &dto.UpdatePlanRequest{Duration: ptr(0)})
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})
}

func TestPlanService_Delete(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPlanService(db)
	trainer := createTestUser(t, db, models.RoleTrainer)
	other := createTestUser(t, db, models.RoleTrainer)

	t.Run("unknown plan", func(t *testing.T) {
		err := svc.Delete(identity.FromUser(trainer), uuid.New())
		assert.ErrorIs(t, err, ErrPlanNotFound)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		plan := createTestPlan(t, db, trainer, "Protected", time.Now())
		err := svc.Delete(identity.FromUser(other), plan.ID)
		assert.ErrorIs(t, err, ErrNotPlanOwner)

		var count int64
		require.NoError(t, db.Model(&models.Plan{}).Where("id = ?", plan.ID).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})
}
