package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/serigraph/quotebot/database"
	"github.com/serigraph/quotebot/internal/config"
	"github.com/serigraph/quotebot/internal/dialog"
	"github.com/serigraph/quotebot/internal/document"
	"github.com/serigraph/quotebot/internal/handlers"
	"github.com/serigraph/quotebot/internal/jobs"
	"github.com/serigraph/quotebot/internal/logger"
	"github.com/serigraph/quotebot/internal/metrics"
	"github.com/serigraph/quotebot/internal/quote"
	"github.com/serigraph/quotebot/internal/routes"
	"github.com/serigraph/quotebot/internal/services"
	"github.com/serigraph/quotebot/internal/session"
	"github.com/serigraph/quotebot/internal/storage"
)

const version = "1.0.0"

func main() {
	// Load .env file for local development
	envLoaded := true
	if os.Getenv("INSTANCE_CONNECTION_NAME") == "" {
		envLoaded = config.LoadEnvFiles()
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err.Error())
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)
	slog.SetDefault(log.Logger)
	if !envLoaded {
		log.Warn("⚠️  No .env file found - checking environment variables")
	}

	ctx := context.Background()

	// Initialize storage
	var store storage.Store
	storageType := "PostgreSQL Database"
	if cfg.UseMemoryStore {
		log.Warn("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
		storageType = "In-Memory (Testing)"
	} else {
		log.Info("📦 Connecting to PostgreSQL database...")
		db, err := database.Connect(cfg.Database)
		if err != nil {
			log.Error("failed to connect to database", "error", err.Error())
			os.Exit(1)
		}
		log.Info("🔄 Running database migrations...")
		if err := database.Migrate(db); err != nil {
			log.Error("failed to migrate database", "error", err.Error())
			os.Exit(1)
		}
		log.Info("✅ Database migrations completed!")
		store = storage.NewDatabaseStore(db)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// Twilio is optional in development: replies are then only logged.
	twilioService, err := services.NewTwilioService(cfg.Twilio, log)
	if err != nil {
		log.Warn("⚠️  Twilio service not initialized - WhatsApp features will be limited", "error", err.Error())
	} else {
		log.Info("✅ Twilio service initialized")
	}

	media, mediaDir := setupMedia(ctx, cfg, log)

	var primary quote.DocumentSink
	if twilioService != nil {
		primary = services.NewWhatsAppDocumentSink(media, twilioService)
	} else {
		primary = services.NewFileDocumentSink(cfg.Media.Dir)
		log.Warn("⚠️  Quote PDFs will only be written to disk", "dir", cfg.Media.Dir)
	}

	finalizerOpts := []quote.Option{
		quote.WithCompanyName(cfg.CompanyName),
		quote.WithMetrics(m),
		quote.WithLogger(log),
	}
	if cfg.SMTP.Enabled() {
		finalizerOpts = append(finalizerOpts, quote.WithArchive(services.NewArchiveMailer(cfg.SMTP, cfg.CompanyName)))
		log.Info("📧 Quote archive mail enabled", "to", cfg.SMTP.ArchiveEmail)
	}
	finalizer := quote.NewFinalizer(document.NewRenderer(), primary, store, finalizerOpts...)

	sessions := session.NewStore(session.WithIdleTTL(cfg.SessionIdleTTL))
	engine := dialog.NewEngine(sessions, store, finalizer, dialog.WithMetrics(m), dialog.WithLogger(log))

	var sender handlers.ReplySender
	if twilioService != nil {
		sender = twilioService
	}

	var deduper handlers.Deduper
	if cfg.RedisURL != "" {
		d, err := services.NewRedisDeduper(ctx, cfg.RedisURL, cfg.DedupeTTL)
		if err != nil {
			log.Warn("⚠️  Redis unavailable, webhook retries will not be de-duplicated", "error", err.Error())
		} else {
			defer d.Close()
			deduper = d
			log.Info("✅ Redis de-duplication enabled")
		}
	}

	sweeper := jobs.NewSweeper(sessions, media, cfg.SweepInterval, cfg.Media.Retention, log)
	sweeper.Start()

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Quotebot v" + version,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Admin-Key",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))

	routes.SetupRoutes(app, routes.Deps{
		Config:    cfg,
		WhatsApp:  handlers.NewWhatsAppHandler(engine, sender, deduper, cfg.DefaultPhoneRegion, log),
		Catalog:   handlers.NewCatalogHandler(store),
		Quotes:    handlers.NewQuoteHandler(store),
		Analytics: handlers.NewAnalyticsHandler(store),
		Health:    handlers.NewHealthHandler(version, store, sessions, storageType, twilioService != nil),
		Gatherer:  registry,
		MediaDir:  mediaDir,
		Log:       log,
	})

	// Handle graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		log.Info("🛑 Gracefully shutting down...")
		log.Info("⏹️  Stopping sweeper...")
		sweeper.Stop()
		log.Info("⏹️  Shutting down server...")
		_ = app.ShutdownWithTimeout(30 * time.Second)
	}()

	log.Info("========================================")
	log.Info("🚀 Quotebot starting", "port", cfg.Port)
	log.Info("📊 Storage: " + storageType)
	log.Info("🌍 Environment: " + cfg.Environment)
	log.Info("📱 WhatsApp", "configured", twilioService != nil)
	log.Info("========================================")

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server stopped", "error", err.Error())
		os.Exit(1)
	}
}

// setupMedia picks MinIO when configured and falls back to a local directory
// served under /media. The returned dir is empty when MinIO is used.
func setupMedia(ctx context.Context, cfg *config.Config, log *logger.Logger) (services.MediaStore, string) {
	if cfg.Media.MinIOEnabled() {
		store, err := services.NewMinIOMediaStore(ctx, cfg.Media)
		if err == nil {
			log.Info("🗄️  Publishing quote PDFs to MinIO", "bucket", cfg.Media.MinIOBucket)
			return store, ""
		}
		log.Warn("⚠️  MinIO unavailable, falling back to local media", "error", err.Error())
	}

	store, err := services.NewLocalMediaStore(cfg.Media.Dir, cfg.Media.PublicBaseURL)
	if err != nil {
		log.Error("failed to prepare media dir", "error", err.Error())
		os.Exit(1)
	}
	if cfg.Media.PublicBaseURL == "" {
		log.Warn("⚠️  PUBLIC_BASE_URL not set, Twilio will not be able to fetch quote PDFs")
	}
	return store, store.Dir()
}
