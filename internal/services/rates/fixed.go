package rates

import (
	"context"
	"time"

	"petquote/internal/models"
)

const fixedNote = "simulated rate; see the Bank of Taiwan site for the actual rate"

// FixedProvider always returns the built-in bank rate.
type FixedProvider struct {
	now func() time.Time
}

func NewFixedProvider() *FixedProvider {
	return &FixedProvider{now: time.Now}
}

func (p *FixedProvider) Name() string { return SourceFixed }

func (p *FixedProvider) FetchRate(ctx context.Context) (models.ExchangeRate, error) {
	return DefaultRate(p.now()), nil
}

// DefaultRate is the constant rate substituted for any unavailable source.
func DefaultRate(at time.Time) models.ExchangeRate {
	return models.ExchangeRate{
		BankBuyRate:  DefaultBankBuyRate,
		BankSellRate: DefaultBankSellRate,
		BaseRate:     DefaultBankSellRate,
		PaypalRate:   WorkingRate(DefaultBankSellRate),
		Timestamp:    at.Format(timestampLayout),
		Note:         fixedNote,
		Source:       SourceFixed,
	}
}
