package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/middleware"
)

// GetBalance returns the caller's current credit balance.
func (h *Handler) GetBalance(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	balance, err := h.creditSvc.GetBalance(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to get balance",
		})
	}

	return c.JSON(fiber.Map{
		"balance": balance,
	})
}

// GetCreditTransactions returns the caller's credit history.
func (h *Handler) GetCreditTransactions(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	transactions, err := h.creditSvc.GetTransactions(c.Context(), userID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to get transactions",
		})
	}

	return c.JSON(fiber.Map{
		"transactions": transactions,
	})
}
