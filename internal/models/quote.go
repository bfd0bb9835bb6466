package models

import (
	"time"

	"gorm.io/gorm"
)

// Quote record statuses
const (
	QuoteStatusSent   = "sent"
	QuoteStatusFailed = "failed"
)

// QuoteRecord is the ledger entry written for every finalized quote.
type QuoteRecord struct {
	gorm.Model
	Number         string    `json:"number" gorm:"uniqueIndex"`
	UserID         string    `json:"user_id" gorm:"index"`
	ClientName     string    `json:"client_name"`
	Product        string    `json:"product"`
	Dimension      string    `json:"dimension"`
	Material       string    `json:"material"`
	Quantity       int       `json:"quantity"`
	IsDigitalPrint bool      `json:"is_digital_print"`
	TurnaroundDays int       `json:"turnaround_days"`
	MarginPercent  float64   `json:"margin_percent"`
	RequiredSheets int       `json:"required_sheets"`
	PaperCost      float64   `json:"paper_cost"`
	FinalCost      float64   `json:"final_cost"`
	UnitPrice      float64   `json:"unit_price"`
	Status         string    `json:"status"`
	FailureReason  string    `json:"failure_reason,omitempty"`
	IssuedAt       time.Time `json:"issued_at"`
}
