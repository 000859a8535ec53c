package main

import (
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

	"github.com/qusailover-design/cv-doctor/internal/config"
	"github.com/qusailover-design/cv-doctor/internal/handlers"
	"github.com/qusailover-design/cv-doctor/internal/repositories"
	"github.com/qusailover-design/cv-doctor/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Optional audit database
	var analysisRepo repositories.AnalysisRepository
	var auditTrail services.AuditTrail

	if cfg.Database.Enabled {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}

		analysisRepo = repositories.NewAnalysisRepository(db)
		auditTrail = services.NewAuditTrail(analysisRepo, cfg.Audit.QueueSize, cfg.Audit.Workers)
		auditTrail.Start()
		log.Println("✅ Audit trail initialized")
	} else {
		log.Println("ℹ️  Audit database disabled, analysis outcomes will not be recorded")
	}

	// Initialize services
	extractor := services.NewTextExtractor()
	renderer := services.NewReportRenderer(cfg.Report.FontPath)
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI. A missing or bad key must not stop the server;
	// model endpoints report a configuration error instead.
	var geminiService services.GeminiService
	if gs, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model); err != nil {
		log.Printf("⚠️  Gemini AI not available: %v. Model endpoints will return a configuration error.\n", err)
	} else {
		geminiService = gs
		log.Println("✅ Gemini AI initialized successfully")
	}

	// Optional guide corpus
	var knowledgeService services.KnowledgeService
	if cfg.Qdrant.Enabled {
		ks, err := services.NewKnowledgeService(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
		)
		if err != nil {
			log.Printf("⚠️  Qdrant not available: %v. Prompts will go out without guide context.\n", err)
		} else if err := ks.InitCollection(); err != nil {
			log.Printf("⚠️  Failed to initialize Qdrant collection: %v. Prompts will go out without guide context.\n", err)
		} else {
			knowledgeService = ks
			log.Println("✅ Qdrant initialized successfully")
		}
	}

	// Initialize analyzer
	analyzerService := services.NewAnalyzerService(
		extractor,
		geminiService,
		knowledgeService,
		auditTrail,
	)
	log.Println("✅ Analyzer service initialized")

	// Initialize Handlers
	analyzeHandler := handlers.NewAnalyzeHandler(analyzerService)
	enhanceHandler := handlers.NewEnhanceHandler(analyzerService)
	reportHandler := handlers.NewReportHandler(renderer)
	historyHandler := handlers.NewHistoryHandler(analysisRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "CV Doctor API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Upload.MaxFileSize),
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
	api := app.Group("/api")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Post("/enhance", enhanceHandler.HandleEnhance)
	api.Post("/generate-pdf", reportHandler.HandleGeneratePDF)
	api.Get("/history", historyHandler.HandleGetHistory)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "CV Doctor API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/analyze",
				"POST /api/enhance",
				"POST /api/generate-pdf",
				"GET /api/history",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if auditTrail != nil {
			auditTrail.Stop()
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
