package pricing

import "github.com/shopspring/decimal"

// QuoteDisplay holds the quote as rendered on the results panel: currency
// values with two decimals, the rate with four.
type QuoteDisplay struct {
	PurchasePrice        string `json:"purchase_price"`
	ShippingFee          string `json:"shipping_fee"`
	ExchangeRate         string `json:"exchange_rate"`
	TotalUSD             string `json:"total_usd"`
	PaypalFee            string `json:"paypal_fee"`
	PaypalDeductionUSD   string `json:"paypal_deduction_usd"`
	PaypalDeductionLocal string `json:"paypal_deduction_local"`
	ServiceFee           string `json:"service_fee"`
	TotalPrice           string `json:"total_price"`
}

// Display formats the quote for presentation. It never feeds back into the
// calculation.
func (q Quote) Display() QuoteDisplay {
	return QuoteDisplay{
		PurchasePrice:        FormatAmount(q.PurchasePrice),
		ShippingFee:          FormatAmount(q.ShippingFee),
		ExchangeRate:         FormatRate(q.ExchangeRate),
		TotalUSD:             FormatAmount(q.TotalUSD),
		PaypalFee:            FormatAmount(q.PaypalFee),
		PaypalDeductionUSD:   FormatAmount(q.PaypalDeductionUSD),
		PaypalDeductionLocal: FormatAmount(q.PaypalDeductionLocal),
		ServiceFee:           FormatAmount(q.ServiceFee),
		TotalPrice:           FormatAmount(q.TotalPrice),
	}
}

// FormatAmount renders a currency value with two decimals.
func FormatAmount(v float64) string { return decimal.NewFromFloat(v).StringFixed(2) }

// FormatRate renders an exchange rate with four decimals.
func FormatRate(v float64) string { return decimal.NewFromFloat(v).StringFixed(4) }

// RoundRate rounds an exchange rate to four decimals.
func RoundRate(v float64) float64 { return decimal.NewFromFloat(v).Round(4).InexactFloat64() }
