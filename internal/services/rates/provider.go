package rates

import (
	"context"
	"strconv"

	"petquote/internal/models"
	"petquote/internal/services/pricing"
)

const (
	SourceFixed = "fixed"
	SourceHTTP  = "http"
	SourceBOT   = "bot"

	// DefaultBankSellRate is the Bank of Taiwan USD spot sell rate used
	// whenever no live rate is available.
	DefaultBankSellRate = 29.575
	DefaultBankBuyRate  = 29.425

	// WorkingRateMarkup is applied to the bank rate to get the default
	// PayPal rate.
	WorkingRateMarkup = 1.1

	timestampLayout = "2006-01-02 15:04"
)

// Provider fetches the current exchange rate from one source.
type Provider interface {
	Name() string
	FetchRate(ctx context.Context) (models.ExchangeRate, error)
}

// WorkingRate derives the default PayPal rate from a bank rate.
func WorkingRate(bankRate float64) float64 {
	return pricing.RoundRate(bankRate * WorkingRateMarkup)
}

// WorkingRateText renders the working rate the way the calculator field shows
// it: four decimals for the built-in rate, the upstream value as-is otherwise.
func WorkingRateText(rate models.ExchangeRate) string {
	if rate.Source == SourceFixed {
		return pricing.FormatRate(rate.PaypalRate)
	}
	return strconv.FormatFloat(rate.PaypalRate, 'f', -1, 64)
}
