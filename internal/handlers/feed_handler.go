package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shubhampanchal18/fitplanhub/internal/dto"
	"github.com/shubhampanchal18/fitplanhub/internal/identity"
	"github.com/shubhampanchal18/fitplanhub/internal/services"
)

type FeedHandler struct {
	feedService *services.FeedService
}

func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

func (h *FeedHandler) Feed(c *fiber.Ctx) error {
	items, err := h.feedService.Compose(identity.FromContext(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compose feed",
		})
	}
	return c.JSON(items)
}
