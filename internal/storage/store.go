package storage

import (
	"context"
	"errors"

	"github.com/serigraph/quotebot/internal/models"
)

// ErrNotFound is returned when a catalog row does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for catalog and quote ledger operations
type Store interface {
	// Product operations
	ListProducts(ctx context.Context) ([]*models.Product, error)
	CreateProduct(ctx context.Context, name string, basePrice float64) (*models.Product, error)

	// Dimension operations
	ListDimensions(ctx context.Context) ([]*models.Dimension, error)
	CreateDimension(ctx context.Context, label string, price float64) (*models.Dimension, error)

	// Material operations
	ListMaterials(ctx context.Context) ([]*models.Material, error)
	CreateMaterial(ctx context.Context, material *models.Material) (*models.Material, error)

	// Additional charge operations
	ListChargeDefinitions(ctx context.Context) ([]*models.ChargeDefinition, error)
	CreateChargeDefinition(ctx context.Context, name, description string) (*models.ChargeDefinition, error)
	DeleteChargeDefinition(ctx context.Context, id uint) error

	// Quote ledger operations
	SaveQuote(ctx context.Context, quote *models.QuoteRecord) error
	ListQuotes(ctx context.Context, limit int) ([]*models.QuoteRecord, error)
	GetQuote(ctx context.Context, number string) (*models.QuoteRecord, error)

	Ping(ctx context.Context) error
}
