package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/shubhampanchal18/fitplanhub/internal/dto"
	"github.com/shubhampanchal18/fitplanhub/internal/identity"
	"github.com/shubhampanchal18/fitplanhub/internal/services"
)

type TrainerHandler struct {
	trainerService *services.TrainerService
	followService  *services.FollowService
}

func NewTrainerHandler(trainerService *services.TrainerService, followService *services.FollowService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService, followService: followService}
}

func (h *TrainerHandler) List(c *fiber.Ctx) error {
	trainers, err := h.trainerService.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list trainers",
		})
	}
	return c.JSON(trainers)
}

func (h *TrainerHandler) Profile(c *fiber.Ctx) error {
	trainerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Trainer not found",
		})
	}

	profile, err := h.trainerService.Profile(identity.FromContext(c), trainerID)
	if err != nil {
		if errors.Is(err, services.ErrTrainerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch trainer profile",
		})
	}
	return c.JSON(profile)
}

func (h *TrainerHandler) Follow(c *fiber.Ctx) error {
	trainerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Trainer not found",
		})
	}

	if err := h.followService.Follow(identity.FromContext(c), trainerID); err != nil {
		switch {
		case errors.Is(err, services.ErrTrainerNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrSelfFollow), errors.Is(err, services.ErrAlreadyFollowing):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to follow trainer",
			})
		}
	}

	return c.JSON(dto.MessageResponse{Message: "Followed successfully"})
}

func (h *TrainerHandler) Unfollow(c *fiber.Ctx) error {
	trainerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Trainer not found",
		})
	}

	if err := h.followService.Unfollow(identity.FromContext(c), trainerID); err != nil {
		if errors.Is(err, services.ErrNotFollowing) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to unfollow trainer",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Unfollowed successfully"})
}

func (h *TrainerHandler) Following(c *fiber.Ctx) error {
	follows, err := h.followService.ListFollowing(identity.FromContext(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list followed trainers",
		})
	}
	return c.JSON(follows)
}
