package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/serigraph/quotebot/internal/config"
	"github.com/serigraph/quotebot/internal/handlers"
	"github.com/serigraph/quotebot/internal/logger"
	"github.com/serigraph/quotebot/internal/middleware"
	"github.com/serigraph/quotebot/internal/services"
)

// Deps holds everything the routes are wired to.
type Deps struct {
	Config    *config.Config
	WhatsApp  *handlers.WhatsAppHandler
	Catalog   *handlers.CatalogHandler
	Quotes    *handlers.QuoteHandler
	Analytics *handlers.AnalyticsHandler
	Health    *handlers.HealthHandler
	Gatherer  prometheus.Gatherer
	// MediaDir is served under /media when documents are published locally.
	MediaDir string
	Log      *logger.Logger
}

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, d Deps) {
	cfg := d.Config

	app.Get("/", d.Health.Info)
	app.Get("/health", d.Health.Check)

	if d.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	if d.MediaDir != "" {
		app.Static(services.MediaPathPrefix, d.MediaDir)
	}

	// ========== WEBHOOK ROUTES ==========
	webhooks := app.Group("/webhook")
	if cfg.IsDevelopment() || cfg.Twilio.DisableValidation {
		webhooks.Post("/whatsapp", d.WhatsApp.HandleWebhook)
		d.Log.Warn("⚠️  WhatsApp webhook validation DISABLED")
	} else {
		webhooks.Post("/whatsapp",
			middleware.ValidateTwilioSignature(cfg.Twilio.AuthToken, cfg.Twilio.WebhookPublicURL, d.Log),
			d.WhatsApp.HandleWebhook,
		)
	}

	// ========== TEST ROUTES (Development Only) ==========
	if cfg.IsDevelopment() {
		app.Post("/test/whatsapp", d.WhatsApp.HandleTestWebhook)
	}

	// ========== ADMIN API ==========
	limiter := middleware.NewIPRateLimiter(cfg.AdminRatePerMinute, d.Log)
	api := app.Group("/api", limiter.RateLimit(), middleware.RequireAdminKey(cfg.AdminAPIKey))

	api.Get("/products", d.Catalog.ListProducts)
	api.Post("/products", d.Catalog.CreateProduct)
	api.Get("/dimensions", d.Catalog.ListDimensions)
	api.Post("/dimensions", d.Catalog.CreateDimension)
	api.Get("/materials", d.Catalog.ListMaterials)
	api.Post("/materials", d.Catalog.CreateMaterial)
	api.Get("/charges", d.Catalog.ListCharges)
	api.Post("/charges", d.Catalog.CreateCharge)
	api.Delete("/charges/:id", d.Catalog.DeleteCharge)

	api.Get("/quotes", d.Quotes.List)
	api.Get("/quotes/summary", d.Analytics.GetQuoteSummary)
	api.Get("/quotes/:number", d.Quotes.Get)
}
