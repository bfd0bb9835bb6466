package storage

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/serigraph/quotebot/internal/models"
)

// Seed is a catalog snapshot loaded from YAML.
type Seed struct {
	Products []struct {
		Name      string  `yaml:"name"`
		BasePrice float64 `yaml:"base_price"`
	} `yaml:"products"`
	Dimensions []struct {
		Label string  `yaml:"label"`
		Price float64 `yaml:"price"`
	} `yaml:"dimensions"`
	Materials []struct {
		Name      string  `yaml:"name"`
		Price     float64 `yaml:"price"`
		SheetSize string  `yaml:"sheet_size"`
	} `yaml:"materials"`
	Charges []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	} `yaml:"charges"`
}

// LoadSeed reads a catalog file from disk.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes a YAML catalog.
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	for i, m := range seed.Materials {
		if m.SheetSize == "" {
			return nil, fmt.Errorf("parse seed: material %d (%q) has no sheet_size", i, m.Name)
		}
	}
	return &seed, nil
}

// Apply inserts every seed row into the store. It stops at the first error.
func (s *Seed) Apply(ctx context.Context, store Store) error {
	for _, p := range s.Products {
		if _, err := store.CreateProduct(ctx, p.Name, p.BasePrice); err != nil {
			return err
		}
	}
	for _, d := range s.Dimensions {
		if _, err := store.CreateDimension(ctx, d.Label, d.Price); err != nil {
			return err
		}
	}
	for _, m := range s.Materials {
		material := &models.Material{Name: m.Name, Price: m.Price, SheetSize: m.SheetSize}
		if _, err := store.CreateMaterial(ctx, material); err != nil {
			return err
		}
	}
	for _, c := range s.Charges {
		if _, err := store.CreateChargeDefinition(ctx, c.Name, c.Description); err != nil {
			return err
		}
	}
	return nil
}
