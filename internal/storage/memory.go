package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/serigraph/quotebot/internal/models"
	"gorm.io/gorm"
)

// MemoryStore holds the whole catalog in memory (tests, local chat, demos)
type MemoryStore struct {
	products   map[uint]*models.Product
	dimensions map[uint]*models.Dimension
	materials  map[uint]*models.Material
	charges    map[uint]*models.ChargeDefinition
	quotes     []*models.QuoteRecord

	// Mutexes for thread safety
	catalogMu sync.RWMutex
	quoteMu   sync.RWMutex

	// Counters for ID generation
	productCounter   uint
	dimensionCounter uint
	materialCounter  uint
	chargeCounter    uint
	quoteCounter     uint
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:   make(map[uint]*models.Product),
		dimensions: make(map[uint]*models.Dimension),
		materials:  make(map[uint]*models.Material),
		charges:    make(map[uint]*models.ChargeDefinition),
	}
}

// Product operations
func (m *MemoryStore) ListProducts(_ context.Context) ([]*models.Product, error) {
	m.catalogMu.RLock()
	defer m.catalogMu.RUnlock()

	products := make([]*models.Product, 0, len(m.products))
	for _, p := range m.products {
		cp := *p
		products = append(products, &cp)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (m *MemoryStore) CreateProduct(_ context.Context, name string, basePrice float64) (*models.Product, error) {
	if name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if basePrice < 0 {
		return nil, fmt.Errorf("product price must not be negative")
	}

	m.catalogMu.Lock()
	defer m.catalogMu.Unlock()

	m.productCounter++
	p := &models.Product{Name: name, BasePrice: basePrice}
	stamp(&p.Model, m.productCounter)
	m.products[p.ID] = p

	cp := *p
	return &cp, nil
}

// Dimension operations
func (m *MemoryStore) ListDimensions(_ context.Context) ([]*models.Dimension, error) {
	m.catalogMu.RLock()
	defer m.catalogMu.RUnlock()

	dimensions := make([]*models.Dimension, 0, len(m.dimensions))
	for _, d := range m.dimensions {
		cp := *d
		dimensions = append(dimensions, &cp)
	}
	sort.Slice(dimensions, func(i, j int) bool { return dimensions[i].ID < dimensions[j].ID })
	return dimensions, nil
}

func (m *MemoryStore) CreateDimension(_ context.Context, label string, price float64) (*models.Dimension, error) {
	if label == "" {
		return nil, fmt.Errorf("dimension label is required")
	}
	if price < 0 {
		return nil, fmt.Errorf("dimension price must not be negative")
	}

	m.catalogMu.Lock()
	defer m.catalogMu.Unlock()

	m.dimensionCounter++
	d := &models.Dimension{Label: label, Price: price}
	stamp(&d.Model, m.dimensionCounter)
	m.dimensions[d.ID] = d

	cp := *d
	return &cp, nil
}

// Material operations
func (m *MemoryStore) ListMaterials(_ context.Context) ([]*models.Material, error) {
	m.catalogMu.RLock()
	defer m.catalogMu.RUnlock()

	materials := make([]*models.Material, 0, len(m.materials))
	for _, mat := range m.materials {
		cp := *mat
		materials = append(materials, &cp)
	}
	sort.Slice(materials, func(i, j int) bool { return materials[i].ID < materials[j].ID })
	return materials, nil
}

func (m *MemoryStore) CreateMaterial(_ context.Context, material *models.Material) (*models.Material, error) {
	if material == nil || material.Name == "" {
		return nil, fmt.Errorf("material name is required")
	}
	if material.Price < 0 {
		return nil, fmt.Errorf("material price must not be negative")
	}

	m.catalogMu.Lock()
	defer m.catalogMu.Unlock()

	m.materialCounter++
	mat := &models.Material{Name: material.Name, Price: material.Price, SheetSize: material.SheetSize}
	stamp(&mat.Model, m.materialCounter)
	m.materials[mat.ID] = mat

	cp := *mat
	return &cp, nil
}

// Additional charge operations
func (m *MemoryStore) ListChargeDefinitions(_ context.Context) ([]*models.ChargeDefinition, error) {
	m.catalogMu.RLock()
	defer m.catalogMu.RUnlock()

	charges := make([]*models.ChargeDefinition, 0, len(m.charges))
	for _, c := range m.charges {
		cp := *c
		charges = append(charges, &cp)
	}
	sort.Slice(charges, func(i, j int) bool { return charges[i].ID < charges[j].ID })
	return charges, nil
}

func (m *MemoryStore) CreateChargeDefinition(_ context.Context, name, description string) (*models.ChargeDefinition, error) {
	if name == "" {
		return nil, fmt.Errorf("charge name is required")
	}

	m.catalogMu.Lock()
	defer m.catalogMu.Unlock()

	m.chargeCounter++
	c := &models.ChargeDefinition{Name: name, Description: description}
	stamp(&c.Model, m.chargeCounter)
	m.charges[c.ID] = c

	cp := *c
	return &cp, nil
}

func (m *MemoryStore) DeleteChargeDefinition(_ context.Context, id uint) error {
	m.catalogMu.Lock()
	defer m.catalogMu.Unlock()

	if _, exists := m.charges[id]; !exists {
		return fmt.Errorf("charge %d: %w", id, ErrNotFound)
	}
	delete(m.charges, id)
	return nil
}

// Quote ledger operations
func (m *MemoryStore) SaveQuote(_ context.Context, quote *models.QuoteRecord) error {
	m.quoteMu.Lock()
	defer m.quoteMu.Unlock()

	m.quoteCounter++
	cp := *quote
	stamp(&cp.Model, m.quoteCounter)
	m.quotes = append(m.quotes, &cp)
	quote.ID = cp.ID
	return nil
}

// ListQuotes returns the most recent quotes first.
func (m *MemoryStore) ListQuotes(_ context.Context, limit int) ([]*models.QuoteRecord, error) {
	m.quoteMu.RLock()
	defer m.quoteMu.RUnlock()

	var quotes []*models.QuoteRecord
	for i := len(m.quotes) - 1; i >= 0; i-- {
		if limit > 0 && len(quotes) == limit {
			break
		}
		cp := *m.quotes[i]
		quotes = append(quotes, &cp)
	}
	return quotes, nil
}

func (m *MemoryStore) GetQuote(_ context.Context, number string) (*models.QuoteRecord, error) {
	m.quoteMu.RLock()
	defer m.quoteMu.RUnlock()

	for _, q := range m.quotes {
		if q.Number == number {
			cp := *q
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("quote %s: %w", number, ErrNotFound)
}

func (m *MemoryStore) Ping(_ context.Context) error {
	return nil
}

func stamp(model *gorm.Model, id uint) {
	now := time.Now()
	model.ID = id
	model.CreatedAt = now
	model.UpdatedAt = now
}
