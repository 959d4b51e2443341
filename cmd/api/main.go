package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"resumescreener/internal/auth"
	"resumescreener/internal/config"
	"resumescreener/internal/handlers"
	"resumescreener/internal/logger"
	"resumescreener/internal/repositories"
	"resumescreener/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()
	log.Info("config loaded", zap.String("env", cfg.Server.Env))

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	log.Info("database connected and migrated")

	// Initialize repository
	resumeRepo := repositories.NewResumeRepository(db)

	// Initialize services
	extractor := services.NewTextExtractor()
	similarityClient := services.NewSimilarityClient(
		cfg.Similarity.URL,
		cfg.Similarity.APIKey,
		cfg.Similarity.Timeout,
		cfg.Similarity.MaxRetries,
		log.Named("similarity"),
	)
	analyzer := services.NewBatchAnalyzer(
		resumeRepo,
		extractor,
		similarityClient,
		log.Named("analyzer"),
	)
	log.Info("services initialized")

	// Token verification only; token issuance belongs to the identity service
	verifier := auth.NewTokenVerifier(cfg.JWT.Secret)

	// Initialize handlers
	analyzeHandler := handlers.NewAnalyzeHandler(
		analyzer,
		verifier,
		cfg.Storage.MaxFileSize,
		log.Named("analyze"),
	)
	resumeHandler := handlers.NewResumeHandler(resumeRepo, log.Named("resumes"))

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Screener API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 2,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.FrontendURL,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/resumes")

	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Get("/user/:userId", resumeHandler.HandleListUserResumes)
	api.Delete("/user/:userId", resumeHandler.HandleDeleteUserResumes)
	api.Get("/:id/file", resumeHandler.HandleGetResumeFile)
	api.Get("/:id", resumeHandler.HandleGetResume)
	api.Delete("/:id", resumeHandler.HandleDeleteResume)

	// Health check
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
