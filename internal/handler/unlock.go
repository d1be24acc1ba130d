package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/middleware"
	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/repository"
	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/service"
)

type UnlockRequest struct {
	UserID int64 `json:"user_id"`
}

// UnlockContact spends credits for permanent access to another user's
// contact info. Repeat calls return the existing unlock without a second
// debit.
func (h *Handler) UnlockContact(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	var req UnlockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	result, err := h.unlockSvc.Unlock(c.Context(), userID, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientCredits):
			balance, _ := h.creditSvc.GetBalance(c.Context(), userID)
			return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
				"error":    "insufficient credits",
				"balance":  balance,
				"required": h.unlockSvc.UnlockCost(c.Context()),
			})
		case errors.Is(err, repository.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "user not found",
			})
		case errors.Is(err, service.ErrSelfUnlock):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "cannot unlock your own contact info",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to unlock contact",
		})
	}

	return c.JSON(result)
}

// NetworkUnlock grants contact access at no cost when the target is added
// to the caller's network.
func (h *Handler) NetworkUnlock(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	var req UnlockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	result, err := h.unlockSvc.NetworkUnlock(c.Context(), userID, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "user not found",
			})
		case errors.Is(err, service.ErrSelfUnlock):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "cannot unlock your own contact info",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to unlock contact",
		})
	}

	return c.JSON(result)
}

// GetContact returns a user's contact info if the caller has unlocked it.
func (h *Handler) GetContact(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	targetID, err := strconv.ParseInt(c.Params("user_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid user id",
		})
	}

	contact, err := h.userSvc.GetContact(c.Context(), userID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "user not found",
			})
		case errors.Is(err, service.ErrContactLocked):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "contact info is locked",
				"cost":  h.unlockSvc.UnlockCost(c.Context()),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to get contact",
		})
	}

	return c.JSON(contact)
}

// ListUnlocks returns everyone the caller has unlocked.
func (h *Handler) ListUnlocks(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	unlocks, err := h.unlockSvc.ListUnlocks(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list unlocks",
		})
	}

	return c.JSON(fiber.Map{
		"unlocks": unlocks,
	})
}
