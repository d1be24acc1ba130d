package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/middleware"
	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/repository"
	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/service"
)

type AdminHandler struct {
	adminSvc *service.AdminService
}

func NewAdminHandler(adminSvc *service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	users, err := h.adminSvc.ListUsers(c.Context(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list users",
		})
	}

	return c.JSON(fiber.Map{
		"users": users,
	})
}

type AdjustCreditsRequest struct {
	Amount int `json:"amount"`
}

// AdjustCredits applies a signed manual correction to a user's ledger.
func (h *AdminHandler) AdjustCredits(c *fiber.Ctx) error {
	adminID := middleware.GetUserID(c)

	userID, err := strconv.ParseInt(c.Params("user_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid user id",
		})
	}

	var req AdjustCreditsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	txID, err := h.adminSvc.AdjustCredits(c.Context(), adminID, userID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrZeroAdjustment):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "amount must be non-zero",
			})
		case errors.Is(err, repository.ErrInsufficientCredits):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "adjustment would drive balance negative",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to adjust credits",
		})
	}

	return c.JSON(fiber.Map{
		"transaction_id": txID,
	})
}

func (h *AdminHandler) GetUserTransactions(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("user_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid user id",
		})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	transactions, err := h.adminSvc.GetUserTransactions(c.Context(), userID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to get transactions",
		})
	}

	return c.JSON(fiber.Map{
		"transactions": transactions,
	})
}

func (h *AdminHandler) GetUnlockCost(c *fiber.Ctx) error {
	cost, err := h.adminSvc.GetUnlockCost(c.Context())
	if err != nil {
		if errors.Is(err, repository.ErrSettingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "unlock cost not overridden; config default applies",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to get unlock cost",
		})
	}

	return c.JSON(fiber.Map{
		"unlock_cost": cost,
	})
}

type SetUnlockCostRequest struct {
	Cost int `json:"cost"`
}

func (h *AdminHandler) SetUnlockCost(c *fiber.Ctx) error {
	var req SetUnlockCostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if req.Cost < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "cost must not be negative",
		})
	}

	if err := h.adminSvc.SetUnlockCost(c.Context(), req.Cost); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to set unlock cost",
		})
	}

	return c.JSON(fiber.Map{
		"unlock_cost": req.Cost,
	})
}

// VerifyLedger checks that a user's cached balance matches the fold of
// their transaction log.
func (h *AdminHandler) VerifyLedger(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("user_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid user id",
		})
	}

	consistent, err := h.adminSvc.VerifyLedger(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to verify ledger",
		})
	}

	return c.JSON(fiber.Map{
		"user_id":    userID,
		"consistent": consistent,
	})
}
