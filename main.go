// main.go
package main

import (
	"log"
	"os"
	"time"

	"divinetemple/database"
	"divinetemple/handlers"
	"divinetemple/middleware"
	"divinetemple/notify"
	"divinetemple/services"
	"divinetemple/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Validate critical environment variables
	validateEnvironment()

	// Initialize database
	database.InitDB()
	defer database.CloseDB()

	// Progress and shop records live in Postgres, with a local file
	// fallback so the engines keep working through database outages.
	remote := store.NewDocumentStore(database.GetDB())
	local := store.NewFileStore(os.Getenv("STATE_DIR"))
	documents := store.NewFallback(remote, local)

	// Notification hub for unlock and purchase toasts
	hub := notify.NewHub()
	defer hub.Close()

	// Per-user engine registry
	services.InitEngineRegistry(database.GetDB(), documents, hub)
	defer services.GetEngineRegistry().Close()

	// Background sweep for booster timers that misfired
	services.InitBoosterSweeper(services.GetEngineRegistry(), 5*time.Minute)
	defer services.GetBoosterSweeper().Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.RateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimitMiddleware())
	authGroup.Post("/guest", handlers.GuestLogin)
	authGroup.Post("/login", handlers.Login)
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/upgrade", middleware.AuthMiddleware, handlers.UpgradeGuest)

	// Progression routes
	progressionGroup := api.Group("/progression")
	progressionGroup.Use(middleware.AuthMiddleware)
	progressionGroup.Get("/", handlers.GetProgression)
	progressionGroup.Post("/activity", handlers.RecordActivity)
	progressionGroup.Post("/xp", handlers.AwardXP)
	progressionGroup.Get("/achievements", handlers.GetAchievements)
	progressionGroup.Post("/achievements/check", handlers.CheckAchievements)
	progressionGroup.Get("/quests", handlers.GetQuests)

	// Shop routes
	shopGroup := api.Group("/shop")
	shopGroup.Use(middleware.AuthMiddleware)
	shopGroup.Get("/catalog", handlers.GetShopCatalog)
	shopGroup.Post("/purchase", handlers.PurchaseItem)
	shopGroup.Post("/activate", handlers.ActivateItem)
	shopGroup.Post("/boosters/activate", handlers.ActivateBooster)
	shopGroup.Get("/owned", handlers.GetOwnedItems)
	shopGroup.Get("/history", handlers.GetPurchaseHistory)
	shopGroup.Get("/active", handlers.GetActiveItems)

	// Leaderboard routes
	leaderboardGroup := api.Group("/leaderboard")
	leaderboardGroup.Get("/", handlers.GetLeaderboard)
	leaderboardGroup.Get("/me", middleware.AuthMiddleware, handlers.GetMyRank)

	// Notification websocket
	app.Use("/ws", handlers.WebSocketUpgrade)
	app.Get("/ws", middleware.WebSocketAuthMiddleware, handlers.NotificationSocket(hub))

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🔐 JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
