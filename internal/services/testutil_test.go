package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shubhampanchal18/fitplanhub/internal/entitlement"
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

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Plan{},
		&models.Subscription{},
		&models.Follow{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, role string) *models.User {
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

func createTestPlan(t *testing.T, db *gorm.DB, trainer *models.User, title string, createdAt time.Time) *models.Plan {
	p := &models.Plan{
		ID:           uuid.New(),
		Title:        title,
		Description:  "Description of " + title,
		Price:        20,
		DurationDays: 30,
		TrainerID:    trainer.ID,
		CreatedAt:    createdAt,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func newTestPlanService(db *gorm.DB) *PlanService {
	return NewPlanService(db, entitlement.NewEngine(db))
}

func ptr[T any](v T) *T {
	return &v
}
