// Package pricing computes the import cost breakdown for a purchase.
package pricing

const (
	PaypalFeeRate       = 0.044
	PaypalDeductionRate = 1 + PaypalFeeRate
	ServiceFeeRate      = 0.4
)

// Input is the raw form state: purchase price and shipping fee in USD, and the
// USD to TWD rate applied to the conversion.
type Input struct {
	PurchasePrice float64 `json:"purchase_price"`
	ShippingFee   float64 `json:"shipping_fee"`
	ExchangeRate  float64 `json:"exchange_rate"`
}

// Quote is the derived breakdown. Values are unrounded.
type Quote struct {
	Input

	TotalUSD             float64 `json:"total_usd"`
	PaypalFee            float64 `json:"paypal_fee"`
	PaypalDeductionUSD   float64 `json:"paypal_deduction_usd"`
	PaypalDeductionLocal float64 `json:"paypal_deduction_local"`
	ServiceFee           float64 `json:"service_fee"`
	TotalPrice           float64 `json:"total_price"`
}

// Calculate derives every value of the quote from the raw inputs in one pass.
func Calculate(in Input) Quote {
	totalUSD := in.PurchasePrice + in.ShippingFee
	paypalDeductionUSD := totalUSD * PaypalDeductionRate
	paypalDeductionLocal := paypalDeductionUSD * in.ExchangeRate
	serviceFee := in.PurchasePrice * in.ExchangeRate * ServiceFeeRate

	return Quote{
		Input:                in,
		TotalUSD:             totalUSD,
		PaypalFee:            totalUSD * PaypalFeeRate,
		PaypalDeductionUSD:   paypalDeductionUSD,
		PaypalDeductionLocal: paypalDeductionLocal,
		ServiceFee:           serviceFee,
		TotalPrice:           paypalDeductionLocal + serviceFee,
	}
}

// CalculateText parses free-form field text and calculates the quote.
func CalculateText(purchasePrice, shippingFee, exchangeRate string) Quote {
	return Calculate(Input{
		PurchasePrice: ParseAmount(purchasePrice),
		ShippingFee:   ParseAmount(shippingFee),
		ExchangeRate:  ParseAmount(exchangeRate),
	})
}
