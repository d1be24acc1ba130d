package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/middleware"
	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/model"
	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/repository"
	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/service"
)

type ToggleVoteRequest struct {
	TargetID   string `json:"target_id"`
	TargetType string `json:"target_type"`
}

// ToggleHelpfulVote flips the caller's helpful vote on a post or comment.
func (h *Handler) ToggleHelpfulVote(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	var req ToggleVoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid target id",
		})
	}

	result, err := h.voteSvc.ToggleHelpful(c.Context(), userID, targetID, model.TargetType(req.TargetType))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTarget):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "target_type must be 'post' or 'comment'",
			})
		case errors.Is(err, repository.ErrContentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "content not found",
			})
		case errors.Is(err, service.ErrSelfVote):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "cannot mark your own content helpful",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to toggle vote",
		})
	}

	return c.JSON(result)
}

type RegisterContentRequest struct {
	Kind string `json:"kind"`
}

// RegisterContent records a new post or comment for vote tracking.
func (h *Handler) RegisterContent(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	var req RegisterContentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	content, err := h.voteSvc.RegisterContent(c.Context(), userID, model.TargetType(req.Kind))
	if err != nil {
		if errors.Is(err, service.ErrInvalidTarget) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "kind must be 'post' or 'comment'",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to register content",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(content)
}
