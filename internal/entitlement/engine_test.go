package entitlement

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shubhampanchal18/fitplanhub/internal/identity"
	"github.com/shubhampanchal18/fitplanhub/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Plan{}, &models.Subscription{}))
	return db
}

func createUser(t *testing.T, db *gorm.DB, role string) *models.User {
	u := &models.User{
		ID:       uuid.New(),
		Name:     "Test " + role,
		Email:    uuid.NewString() + "@example.com",
		Password: "hash",
		Role:     role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createPlan(t *testing.T, db *gorm.DB, trainer *models.User) *models.Plan {
	p := &models.Plan{
		ID:           uuid.New(),
		Title:        "5K Plan",
		Description:  "Couch to 5K in eight weeks",
		Price:        20,
		DurationDays: 30,
		TrainerID:    trainer.ID,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func subscribe(t *testing.T, db *gorm.DB, userID, planID uuid.UUID, status string, expiresAt time.Time) {
	sub := &models.Subscription{
		ID:          uuid.New(),
		UserID:      userID,
		PlanID:      planID,
		Status:      status,
		PurchasedAt: time.Now().Add(-time.Hour),
		ExpiresAt:   expiresAt,
	}
	require.NoError(t, db.Create(sub).Error)
}

func TestEngine_HasAccess(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	trainer := createUser(t, db, models.RoleTrainer)
	plan := createPlan(t, db, trainer)

	t.Run("anonymous viewer never has access", func(t *testing.T) {
		access, err := engine.HasAccess(identity.Anonymous(), plan.ID)
		require.NoError(t, err)
		assert.False(t, access)
	})

	t.Run("authenticated without subscription has no access", func(t *testing.T) {
		user := createUser(t, db, models.RoleUser)
		access, err := engine.HasAccess(identity.FromUser(user), plan.ID)
		require.NoError(t, err)
		assert.False(t, access)
	})

	t.Run("active unexpired subscription grants access", func(t *testing.T) {
		user := createUser(t, db, models.RoleUser)
		subscribe(t, db, user.ID, plan.ID, models.SubscriptionActive, time.Now().Add(24*time.Hour))

		access, err := engine.HasAccess(identity.FromUser(user), plan.ID)
		require.NoError(t, err)
		assert.True(t, access)
	})

	t.Run("expired status denies access", func(t *testing.T) {
		user := createUser(t, db, models.RoleUser)
		subscribe(t, db, user.ID, plan.ID, models.SubscriptionExpired, time.Now().Add(24*time.Hour))

		access, err := engine.HasAccess(identity.FromUser(user), plan.ID)
		require.NoError(t, err)
		assert.False(t, access)
	})

	t.Run("lapsed record still flagged active denies access", func(t *testing.T) {
		user := createUser(t, db, models.RoleUser)
		subscribe(t, db, user.ID, plan.ID, models.SubscriptionActive, time.Now().Add(-time.Minute))

		access, err := engine.HasAccess(identity.FromUser(user), plan.ID)
		require.NoError(t, err)
		assert.False(t, access)
	})

	t.Run("trainer gets no bypass for own plan", func(t *testing.T) {
		access, err := engine.HasAccess(identity.FromUser(trainer), plan.ID)
		require.NoError(t, err)
		assert.False(t, access)
	})
}

func TestEngine_AccessiblePlanIDs(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	trainer := createUser(t, db, models.RoleTrainer)
	active := createPlan(t, db, trainer)
	lapsed := createPlan(t, db, trainer)
	unrelated := createPlan(t, db, trainer)
	user := createUser(t, db, models.RoleUser)

	subscribe(t, db, user.ID, active.ID, models.SubscriptionActive, time.Now().Add(24*time.Hour))
	subscribe(t, db, user.ID, lapsed.ID, models.SubscriptionActive, time.Now().Add(-time.Minute))

	set, err := engine.AccessiblePlanIDs(identity.FromUser(user))
	require.NoError(t, err)

	assert.Contains(t, set, active.ID)
	assert.NotContains(t, set, lapsed.ID)
	assert.NotContains(t, set, unrelated.ID)

	t.Run("anonymous gets an empty set", func(t *testing.T) {
		set, err := engine.AccessiblePlanIDs(identity.Anonymous())
		require.NoError(t, err)
		assert.Empty(t, set)
	})
}

func TestProject_RedactsGatedFields(t *testing.T) {
	db := setupTestDB(t)
	trainer := createUser(t, db, models.RoleTrainer)
	plan := createPlan(t, db, trainer)
	plan.Trainer = *trainer
	plan.Schedule = []byte(`{"week1":["run","rest","run"]}`)

	t.Run("without access", func(t *testing.T) {
		view := Project(plan, false)

		assert.Equal(t, plan.ID, view.ID)
		assert.Equal(t, "5K Plan", view.Title)
		assert.Equal(t, float64(20), view.Price)
		assert.False(t, view.HasAccess)
		require.NotNil(t, view.Trainer)
		assert.Equal(t, trainer.ID, view.Trainer.ID)

		assert.Nil(t, view.Description)
		assert.Nil(t, view.Duration)
		assert.Nil(t, view.Schedule)
		assert.Nil(t, view.CreatedAt)

		// Redaction is structural: the gated keys must not appear in the
		// serialized form at all.
		raw, err := json.Marshal(view)
		require.NoError(t, err)
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &m))
		assert.NotContains(t, m, "description")
		assert.NotContains(t, m, "duration")
		assert.NotContains(t, m, "schedule")
		assert.NotContains(t, m, "created_at")
	})

	t.Run("with access", func(t *testing.T) {
		view := Project(plan, true)

		assert.True(t, view.HasAccess)
		require.NotNil(t, view.Description)
		assert.Equal(t, plan.Description, *view.Description)
		require.NotNil(t, view.Duration)
		assert.Equal(t, 30, *view.Duration)
		assert.NotNil(t, view.CreatedAt)
		assert.NotEmpty(t, view.Schedule)
	})

	t.Run("missing trainer degrades to nil summary", func(t *testing.T) {
		orphan := &models.Plan{ID: uuid.New(), Title: "Orphan", Price: 5}
		view := Project(orphan, false)
		assert.Nil(t, view.Trainer)
	})
}
