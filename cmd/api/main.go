package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/voicepost-team/voicepost/pkg/validator"

	"github.com/voicepost-team/voicepost/internal/adapter/handler"
	"github.com/voicepost-team/voicepost/internal/adapter/repository"
	"github.com/voicepost-team/voicepost/internal/infrastructure/cache"
	"github.com/voicepost-team/voicepost/internal/infrastructure/database"
	"github.com/voicepost-team/voicepost/internal/infrastructure/storage"
	"github.com/voicepost-team/voicepost/internal/usecase/analyzer"
	"github.com/voicepost-team/voicepost/internal/usecase/framework"
	"github.com/voicepost-team/voicepost/internal/usecase/generation"
	"github.com/voicepost-team/voicepost/internal/usecase/ingest"
	"github.com/voicepost-team/voicepost/internal/usecase/prompt"
	"github.com/voicepost-team/voicepost/internal/usecase/segmenter"
	"github.com/voicepost-team/voicepost/internal/usecase/style"
	pkgai "github.com/voicepost-team/voicepost/pkg/ai"
	"github.com/voicepost-team/voicepost/pkg/config"
	"github.com/voicepost-team/voicepost/pkg/tokens"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Apply schema migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate in CI/CD.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Applying migrations (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	voiceRepo := repository.NewVoiceContextRepository(db)

	// Initialize completion clients. The classifier stages run on a cheaper
	// model than generation.
	log.Println("🤖 Initializing completion clients...")
	generationClient := pkgai.NewOpenAIClient(&cfg.Completion, "")
	classifierClient := pkgai.NewOpenAIClient(&cfg.Completion, cfg.Completion.ClassifierModel)

	// Initialize pipeline components
	log.Println("🧩 Initializing pipeline...")
	estimator := tokens.NewCharEstimator()
	lib := framework.NewLibrary()
	seg := segmenter.New(classifierClient, &cfg.Pipeline, logger)
	an := analyzer.New(classifierClient, lib, logger)
	fingerprintCache := cache.NewRedisStore(redisClient, logger)
	extractor := style.NewExtractor(classifierClient, fingerprintCache, logger)
	assembler := prompt.NewAssembler(estimator, logger)
	orchestrator := generation.NewOrchestrator(
		seg, an, lib, assembler, extractor,
		voiceRepo, generationClient, estimator,
		&cfg.Pipeline, logger,
	)

	// Initialize voice memo ingest
	log.Println("🎙️  Initializing voice memo ingest...")
	minioClient, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	transcriptionClient := pkgai.NewTranscriptionClient(&cfg.Transcription)
	ingestService := ingest.NewService(minioClient, transcriptionClient, logger)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	draftHandler := handler.NewDraft(orchestrator, logger)
	styleHandler := handler.NewStyle(extractor, logger)
	voiceHandler := handler.NewVoice(voiceRepo, logger)
	memoHandler := handler.NewMemo(ingestService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, draftHandler, styleHandler, voiceHandler, memoHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
