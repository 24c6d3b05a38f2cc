package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"petquote/internal/services/rates"
	"petquote/internal/utils/response"
)

type RateHandler struct {
	provider rates.Provider
	tracker  *rates.Tracker
}

func NewRateHandler(provider rates.Provider, tracker *rates.Tracker) *RateHandler {
	return &RateHandler{provider: provider, tracker: tracker}
}

// GetExchangeRate serves the rate in the shape other calculator instances
// read with rates.HTTPProvider.
func (h *RateHandler) GetExchangeRate(c *fiber.Ctx) error {
	rate, err := h.provider.FetchRate(c.UserContext())
	if err != nil {
		log.Error().Err(err).Str("source", h.provider.Name()).Msg("exchange rate unavailable")
		return response.ServerError(c, "exchange rate unavailable")
	}

	body := fiber.Map{
		"success":        true,
		"bank_buy_rate":  rate.BankBuyRate,
		"bank_sell_rate": rate.BankSellRate,
		"base_rate":      rate.BaseRate,
		"paypal_rate":    rate.PaypalRate,
		"timestamp":      rate.Timestamp,
		"source":         rate.Source,
	}
	if rate.Note != "" {
		body["note"] = rate.Note
	}
	return response.Success(c, body)
}

func (h *RateHandler) GetRate(c *fiber.Ctx) error {
	return response.Success(c, h.tracker.State())
}

// RefreshRate re-fetches the rate the calculator pre-fills.
func (h *RateHandler) RefreshRate(c *fiber.Ctx) error {
	state, err := h.tracker.Refresh(c.UserContext())
	if err != nil {
		log.Warn().Err(err).Msg("rate refresh failed")
	}
	return response.Success(c, state)
}
