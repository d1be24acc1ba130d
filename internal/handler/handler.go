package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/config"
	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/service"
)

type Handler struct {
	cfg       *config.Config
	userSvc   *service.UserService
	creditSvc *service.CreditService
	voteSvc   *service.VoteService
	unlockSvc *service.UnlockService
}

func New(
	cfg *config.Config,
	userSvc *service.UserService,
	creditSvc *service.CreditService,
	voteSvc *service.VoteService,
	unlockSvc *service.UnlockService,
) *Handler {
	return &Handler{
		cfg:       cfg,
		userSvc:   userSvc,
		creditSvc: creditSvc,
		voteSvc:   voteSvc,
		unlockSvc: unlockSvc,
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
