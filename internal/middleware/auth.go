package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shubhampanchal18/fitplanhub/internal/config"
	"github.com/shubhampanchal18/fitplanhub/internal/dto"
	"github.com/shubhampanchal18/fitplanhub/internal/identity"
	"github.com/shubhampanchal18/fitplanhub/internal/models"
)

// ResolveViewer turns the optional Authorization header into a Viewer, exactly
// once per request. Missing, malformed or expired credentials — and tokens
// whose user no longer exists — all resolve to the anonymous viewer rather
// than an error, because several read surfaces serve anonymous viewers with a
// reduced projection.
func ResolveViewer(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity.Store(c, resolve(c, db, cfg))
		return c.Next()
	}
}

func resolve(c *fiber.Ctx, db *gorm.DB, cfg *config.Config) identity.Viewer {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return identity.Anonymous()
	}

	raw := strings.TrimPrefix(header, "Bearer ")
	if raw == header || raw == "" {
		return identity.Anonymous()
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return identity.Anonymous()
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return identity.Anonymous()
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return identity.Anonymous()
	}

	// The token may outlive its account; a deleted user is anonymous too.
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return identity.Anonymous()
	}

	return identity.FromUser(&user)
}

// AuthRequired rejects requests whose resolved viewer is anonymous.
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if identity.FromContext(c).IsAnonymous() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized: authentication required",
			})
		}
		return c.Next()
	}
}

// TrainerRequired rejects anonymous viewers and authenticated non-trainers.
func TrainerRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		viewer := identity.FromContext(c)
		if viewer.IsAnonymous() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized: authentication required",
			})
		}
		if !viewer.IsTrainer() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Trainer account required",
			})
		}
		return c.Next()
	}
}
