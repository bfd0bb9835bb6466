package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/serigraph/quotebot/internal/session"
)

// Pinger checks a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	version  string
	store    Pinger
	sessions *session.Store
	storage  string
	whatsapp bool
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string, store Pinger, sessions *session.Store, storageType string, whatsappConfigured bool) *HealthHandler {
	return &HealthHandler{
		version:  version,
		store:    store,
		sessions: sessions,
		storage:  storageType,
		whatsapp: whatsappConfigured,
	}
}

// Check returns the health status of the service
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status, code := "healthy", fiber.StatusOK
	dbOK := true
	if err := h.store.Ping(ctx); err != nil {
		status, code, dbOK = "unhealthy", fiber.StatusServiceUnavailable, false
	}

	return c.Status(code).JSON(fiber.Map{
		"status":  status,
		"version": h.version,
		"services": fiber.Map{
			"database": dbOK,
			"twilio":   h.whatsapp,
		},
	})
}

// Info describes the running service.
func (h *HealthHandler) Info(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "Quotebot",
		"version": h.version,
		"storage": h.storage,
		"whatsapp": fiber.Map{
			"configured": h.whatsapp,
		},
		"sessions": h.sessions.Stats(),
		"endpoints": fiber.Map{
			"health":        "/health",
			"api":           "/api",
			"webhook":       "/webhook/whatsapp",
			"test_whatsapp": "/test/whatsapp",
			"metrics":       "/metrics",
		},
	})
}
