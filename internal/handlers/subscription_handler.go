package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/shubhampanchal18/fitplanhub/internal/dto"
	"github.com/shubhampanchal18/fitplanhub/internal/identity"
	"github.com/shubhampanchal18/fitplanhub/internal/services"
)

type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// Subscribe answers 201 for a brand-new subscription and 200 for a
// reactivation of a lapsed one.
func (h *SubscriptionHandler) Subscribe(c *fiber.Ctx) error {
	planID, err := uuid.Parse(c.Params("planId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Plan not found",
		})
	}

	sub, created, err := h.subscriptionService.Subscribe(identity.FromContext(c), planID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPlanNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrAlreadySubscribed):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to subscribe",
			})
		}
	}

	if created {
		return c.Status(fiber.StatusCreated).JSON(sub)
	}
	return c.JSON(sub)
}

func (h *SubscriptionHandler) MySubscriptions(c *fiber.Ctx) error {
	subs, err := h.subscriptionService.ListActive(identity.FromContext(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list subscriptions",
		})
	}
	return c.JSON(subs)
}
