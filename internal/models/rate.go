package models

import (
	"time"

	"github.com/google/uuid"
)

// ExchangeRate is one USD to TWD quote from a rate source. BaseRate is the
// bank rate; PaypalRate is the working rate applied to conversions.
type ExchangeRate struct {
	BankBuyRate  float64 `json:"bank_buy_rate"`
	BankSellRate float64 `json:"bank_sell_rate"`
	BaseRate     float64 `json:"base_rate"`
	PaypalRate   float64 `json:"paypal_rate"`
	Timestamp    string  `json:"timestamp"`
	Note         string  `json:"note,omitempty"`
	Source       string  `json:"source"`
}

// RateSnapshot records an exchange rate fetched from an upstream source.
type RateSnapshot struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Source       string    `gorm:"index;not null" json:"source"`
	BankBuyRate  float64   `json:"bank_buy_rate"`
	BankSellRate float64   `json:"bank_sell_rate"`
	BaseRate     float64   `gorm:"not null" json:"base_rate"`
	PaypalRate   float64   `gorm:"not null" json:"paypal_rate"`
	QuotedAt     string    `json:"quoted_at"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

func NewRateSnapshot(rate ExchangeRate) *RateSnapshot {
	return &RateSnapshot{
		ID:           uuid.New(),
		Source:       rate.Source,
		BankBuyRate:  rate.BankBuyRate,
		BankSellRate: rate.BankSellRate,
		BaseRate:     rate.BaseRate,
		PaypalRate:   rate.PaypalRate,
		QuotedAt:     rate.Timestamp,
	}
}
