package models

import (
	"gorm.io/gorm"
)

// Product is a printable item offered to clients (flyers, business cards, ...).
type Product struct {
	gorm.Model
	Name      string  `json:"name" gorm:"not null"`
	BasePrice float64 `json:"base_price" gorm:"not null;default:0"`
}

// Dimension is a standard finished size, e.g. "Carta 8.5x11".
type Dimension struct {
	gorm.Model
	Label string  `json:"label" gorm:"not null"`
	Price float64 `json:"price" gorm:"not null;default:0"`
}

// Material is a printing stock. Price is quoted per 500-sheet ream and
// SheetSize is either "WxH" or a named paper size.
type Material struct {
	gorm.Model
	Name      string  `json:"name" gorm:"not null"`
	Price     float64 `json:"price" gorm:"not null;default:0"`
	SheetSize string  `json:"sheet_size" gorm:"not null"`
}

// ChargeDefinition is an admin-configured surcharge whose amount is asked
// for on every quote.
type ChargeDefinition struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
}
