// Package identity defines the per-request Viewer: the single representation of
// "who is asking" threaded through every core operation. A request with a missing
// or invalid credential resolves to the anonymous viewer, which is a valid state,
// not an error.
package identity

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/shubhampanchal18/fitplanhub/internal/models"
)

const localsKey = "viewer"

// Viewer is resolved once per request and never re-derived mid-pipeline.
type Viewer struct {
	ID            uuid.UUID
	Name          string
	Role          string
	Authenticated bool
}

func Anonymous() Viewer {
	return Viewer{}
}

func FromUser(u *models.User) Viewer {
	return Viewer{
		ID:            u.ID,
		Name:          u.Name,
		Role:          u.Role,
		Authenticated: true,
	}
}

func (v Viewer) IsAnonymous() bool {
	return !v.Authenticated
}

func (v Viewer) IsTrainer() bool {
	return v.Authenticated && v.Role == models.RoleTrainer
}

// Store saves the resolved viewer in Fiber context locals.
func Store(c *fiber.Ctx, v Viewer) {
	c.Locals(localsKey, v)
}

// FromContext returns the viewer resolved by the middleware, or the anonymous
// viewer if resolution never ran.
func FromContext(c *fiber.Ctx) Viewer {
	if v, ok := c.Locals(localsKey).(Viewer); ok {
		return v
	}
	return Anonymous()
}
