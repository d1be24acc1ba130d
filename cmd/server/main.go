package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/config"
	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/handler"
	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/middleware"
	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/repository"
	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	repo, err := repository.New(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	// Create services
	rewardEngine := service.NewRewardEngine(cfg.Rewards)
	creditSvc := service.NewCreditService(repo, rewardEngine)
	voteSvc := service.NewVoteService(repo, creditSvc, rewardEngine)
	unlockSvc := service.NewUnlockService(repo, cfg)
	userSvc := service.NewUserService(repo, unlockSvc)
	adminSvc := service.NewAdminService(repo)

	// Create handlers
	h := handler.New(cfg, userSvc, creditSvc, voteSvc, unlockSvc)
	adminHandler := handler.NewAdminHandler(adminSvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Health check
	app.Get("/health", h.Health)

	// Auth (no token required)
	app.Post("/api/auth/signup", h.Signup)
	app.Post("/api/auth/login", h.Login)

	// API routes with bearer authentication
	api := app.Group("/api", middleware.Auth(cfg))

	// User
	api.Get("/user/me", h.GetMe)
	api.Put("/user/me", h.UpdateProfile)

	// Credits
	api.Get("/credits/balance", h.GetBalance)
	api.Get("/credits/transactions", h.GetCreditTransactions)

	// Forum content + helpful votes
	api.Post("/content", h.RegisterContent)
	api.Post("/votes/toggle", h.ToggleHelpfulVote)

	// Contact unlocks
	api.Post("/contacts/unlock", h.UnlockContact)
	api.Post("/contacts/network", h.NetworkUnlock)
	api.Get("/contacts/unlocks", h.ListUnlocks)
	api.Get("/contacts/:user_id", h.GetContact)

	// Admin routes (requires auth + admin role)
	admin := app.Group("/api/admin", middleware.Auth(cfg), middleware.AdminAuth(adminSvc))
	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users/:user_id/credits/adjust", adminHandler.AdjustCredits)
	admin.Get("/users/:user_id/transactions", adminHandler.GetUserTransactions)
	admin.Get("/users/:user_id/ledger/verify", adminHandler.VerifyLedger)
	admin.Get("/settings/unlock-cost", adminHandler.GetUnlockCost)
	admin.Post("/settings/unlock-cost", adminHandler.SetUnlockCost)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down server...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
