package routes

import (
	"finser-backend/internal/adapters/http/handlers"
	"finser-backend/internal/adapters/http/middleware"
	"finser-backend/internal/adapters/persistence/repositories"
	"finser-backend/internal/config"
	"finser-backend/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	adminRepo := repositories.NewAdminUserRepository(db)
	formRepo := repositories.NewFormRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, adminRepo, cfg)
	formService := services.NewFormService(formRepo, userRepo)
	quizService := services.NewQuizService(formService)
	invoiceService := services.NewInvoiceService()

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	formHandler := handlers.NewFormHandler(formService, quizService, invoiceService)
	adminHandler := handlers.NewAdminHandler(formService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public, rate limited)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Form routes (authenticated users)
	formRoutes := apiV1.Group("/forms")
	formRoutes.Use(middleware.AuthMiddleware(cfg))
	setupFormRoutes(formRoutes, formHandler)

	// Admin routes (computed admin flag only; no flag means no access)
	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(cfg))
	adminRoutes.Use(middleware.AdminOnly())
	setupAdminRoutes(adminRoutes, adminHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Token-bearing responses must never be cached
	router.Use(middleware.NoCacheHeaders())

	// Public routes (5 req/min/IP)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupFormRoutes configures form submission and dashboard routes
func setupFormRoutes(router fiber.Router, handler *handlers.FormHandler) {
	router.Get("/types", middleware.CatalogCache(), handler.ListTypes)
	router.Post("/", handler.Submit)
	router.Get("/my", handler.MyForms)
	router.Get("/:id/invoice", handler.Invoice)
	router.Post("/:id/quiz", handler.StartQuiz)
	router.Post("/:id/quiz/answers", handler.SubmitQuiz)
}

// setupAdminRoutes configures admin review routes
func setupAdminRoutes(router fiber.Router, handler *handlers.AdminHandler) {
	router.Get("/forms", handler.List)
	router.Get("/forms/lookup", handler.Lookup)
	router.Put("/forms/:id/status", handler.SetStatus)
}
