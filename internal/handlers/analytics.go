package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/serigraph/quotebot/internal/models"
	"github.com/serigraph/quotebot/internal/storage"
)

type AnalyticsHandler struct {
	store storage.Store
}

func NewAnalyticsHandler(store storage.Store) *AnalyticsHandler {
	return &AnalyticsHandler{
		store: store,
	}
}

// GetQuoteSummary aggregates the most recent quotes (?limit=, default 500).
func (h *AnalyticsHandler) GetQuoteSummary(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", maxQuoteLimit)
	if limit <= 0 || limit > maxQuoteLimit {
		limit = maxQuoteLimit
	}

	quotes, err := h.store.ListQuotes(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(models.SummarizeQuotes(quotes))
}
