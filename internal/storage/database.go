package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/serigraph/quotebot/internal/models"
)

// DatabaseStore persists the catalog and the quote ledger in Postgres.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore wraps an open gorm connection.
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func (s *DatabaseStore) ListProducts(ctx context.Context) ([]*models.Product, error) {
	var products []*models.Product
	if err := s.db.WithContext(ctx).Order("id asc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *DatabaseStore) CreateProduct(ctx context.Context, name string, basePrice float64) (*models.Product, error) {
	if name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if basePrice < 0 {
		return nil, fmt.Errorf("product price must not be negative")
	}

	p := &models.Product{Name: name, BasePrice: basePrice}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("create product %q: %w", name, err)
	}
	return p, nil
}

func (s *DatabaseStore) ListDimensions(ctx context.Context) ([]*models.Dimension, error) {
	var dimensions []*models.Dimension
	if err := s.db.WithContext(ctx).Order("id asc").Find(&dimensions).Error; err != nil {
		return nil, fmt.Errorf("list dimensions: %w", err)
	}
	return dimensions, nil
}

func (s *DatabaseStore) CreateDimension(ctx context.Context, label string, price float64) (*models.Dimension, error) {
	d := &models.Dimension{Label: label, Price: price}
	if err := s.db.WithContext(ctx).Create(d).Error; err != nil {
		return nil, fmt.Errorf("create dimension %q: %w", label, err)
	}
	return d, nil
}

func (s *DatabaseStore) ListMaterials(ctx context.Context) ([]*models.Material, error) {
	var materials []*models.Material
	if err := s.db.WithContext(ctx).Order("id asc").Find(&materials).Error; err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	return materials, nil
}

func (s *DatabaseStore) CreateMaterial(ctx context.Context, material *models.Material) (*models.Material, error) {
	m := &models.Material{Name: material.Name, Price: material.Price, SheetSize: material.SheetSize}
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, fmt.Errorf("create material %q: %w", material.Name, err)
	}
	return m, nil
}

func (s *DatabaseStore) ListChargeDefinitions(ctx context.Context) ([]*models.ChargeDefinition, error) {
	var charges []*models.ChargeDefinition
	if err := s.db.WithContext(ctx).Order("id asc").Find(&charges).Error; err != nil {
		return nil, fmt.Errorf("list charges: %w", err)
	}
	return charges, nil
}

func (s *DatabaseStore) CreateChargeDefinition(ctx context.Context, name, description string) (*models.ChargeDefinition, error) {
	c := &models.ChargeDefinition{Name: name, Description: description}
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, fmt.Errorf("create charge %q: %w", name, err)
	}
	return c, nil
}

func (s *DatabaseStore) DeleteChargeDefinition(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.ChargeDefinition{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete charge %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("charge %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *DatabaseStore) SaveQuote(ctx context.Context, quote *models.QuoteRecord) error {
	if err := s.db.WithContext(ctx).Create(quote).Error; err != nil {
		return fmt.Errorf("save quote %s: %w", quote.Number, err)
	}
	return nil
}

func (s *DatabaseStore) ListQuotes(ctx context.Context, limit int) ([]*models.QuoteRecord, error) {
	var quotes []*models.QuoteRecord
	q := s.db.WithContext(ctx).Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&quotes).Error; err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	return quotes, nil
}

// GetQuote looks a ledger entry up by its quote number.
func (s *DatabaseStore) GetQuote(ctx context.Context, number string) (*models.QuoteRecord, error) {
	var quote models.QuoteRecord
	err := s.db.WithContext(ctx).Where("number = ?", number).First(&quote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("quote %s: %w", number, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get quote %s: %w", number, err)
	}
	return &quote, nil
}

func (s *DatabaseStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
