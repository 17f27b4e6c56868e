package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/config"
	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/handlers"
	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/repositories"
	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	interviewRepo := repositories.NewInterviewRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Worker.AgentTimeout)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Qdrant is optional: without it question generation runs without
	// retrieved context and resume indexing is disabled.
	var qdrantService services.QdrantService
	if cfg.Qdrant.URL != "" {
		qdrantService, err = services.NewQdrantService(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
		)
		if err != nil {
			log.Printf("⚠️  Failed to initialize Qdrant, continuing without context retrieval: %v\n", err)
			qdrantService = nil
		} else if err := qdrantService.InitCollection(); err != nil {
			log.Printf("⚠️  Failed to initialize Qdrant collection, continuing without context retrieval: %v\n", err)
			qdrantService = nil
		} else {
			log.Println("✅ Qdrant initialized successfully")
		}
	} else {
		log.Println("⚠️  QDRANT_URL not set, context retrieval disabled")
	}

	questionService := services.NewQuestionService(geminiService, qdrantService, cfg.Worker.RetryMaxAttempts)
	responseProcessor := services.NewResponseProcessor(geminiService, cfg.Worker.RetryMaxAttempts)
	evaluationAggregator := services.NewEvaluationAggregator(geminiService, cfg.Worker.RetryMaxAttempts)
	analyticsService := services.NewAnalyticsService(interviewRepo)
	log.Println("✅ Services initialized successfully")

	// Session store with background expiry reaper
	sessionStore := services.NewSessionStore(sessionRepo, cfg.Session.Timeout, cfg.Session.ReapInterval)

	ctx := context.Background()
	sessionStore.Start(ctx)
	log.Println("✅ Session store started successfully")

	// Resume indexer pushes uploaded resumes into the vector store
	var indexer services.Indexer
	if qdrantService != nil {
		indexer = services.NewIndexer(geminiService, qdrantService, cfg.Worker.Concurrency)
		indexer.Start(ctx)
		log.Println("✅ Resume indexer started successfully")
	}

	// Initialize handlers
	resumeHandler := handlers.NewResumeHandler(
		interviewRepo,
		sessionStore,
		storageService,
		pdfParser,
		questionService,
		indexer,
		cfg.Storage.MaxFileSize,
	)
	interviewHandler := handlers.NewInterviewHandler(
		interviewRepo,
		sessionStore,
		responseProcessor,
		evaluationAggregator,
	)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Interview System",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Interview System API is running",
		})
	})

	app.Post("/upload_resume", resumeHandler.HandleUploadResume)
	app.Get("/question/:user_id/:session_id", resumeHandler.HandleGetQuestions)
	app.Post("/process_interview_responses/:user_id/:session_id", interviewHandler.HandleProcessResponses)

	app.Get("/user_stats/:user_id", analyticsHandler.HandleUserStats)
	app.Get("/performance_evaluations/:user_id", analyticsHandler.HandlePerformanceEvaluations)
	app.Get("/monthly_scores/:user_id", analyticsHandler.HandleMonthlyScores)
	app.Get("/test_scores/:user_id", analyticsHandler.HandleTestScores)
	app.Get("/get_mock_interview/:user_id", analyticsHandler.HandleGetMockInterviews)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		sessionStore.Stop()
		if indexer != nil {
			indexer.Stop()
		}
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
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
