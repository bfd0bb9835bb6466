package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/serigraph/quotebot/internal/storage"
)

const (
	defaultQuoteLimit = 50
	maxQuoteLimit     = 500
)

// QuoteHandler serves the issued quote ledger.
type QuoteHandler struct {
	store storage.Store
}

func NewQuoteHandler(store storage.Store) *QuoteHandler {
	return &QuoteHandler{store: store}
}

// List returns the most recent quotes, newest first.
func (h *QuoteHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultQuoteLimit)
	if limit <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "limit must be positive")
	}
	if limit > maxQuoteLimit {
		limit = maxQuoteLimit
	}

	quotes, err := h.store.ListQuotes(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(quotes)
}

func (h *QuoteHandler) Get(c *fiber.Ctx) error {
	q, err := h.store.GetQuote(c.UserContext(), c.Params("number"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "quote not found")
		}
		return err
	}
	return c.JSON(q)
}
