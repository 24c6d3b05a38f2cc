package handlers

import (
	"github.com/gofiber/fiber/v2"

	"petquote/internal/content"
	"petquote/internal/services/pricing"
	"petquote/internal/services/rates"
	"petquote/internal/utils/response"
)

// QuoteRecorder counts calculated quotes.
type QuoteRecorder interface {
	RecordQuote(endpoint string)
}

type QuoteHandler struct {
	tracker  *rates.Tracker
	content  content.Content
	recorder QuoteRecorder
}

func NewQuoteHandler(tracker *rates.Tracker, pageContent content.Content, recorder QuoteRecorder) *QuoteHandler {
	return &QuoteHandler{tracker: tracker, content: pageContent, recorder: recorder}
}

type quoteFields struct {
	PurchasePrice fieldText `json:"purchase_price"`
	ShippingFee   fieldText `json:"shipping_fee"`
	ExchangeRate  fieldText `json:"exchange_rate"`
}

type quoteResponse struct {
	Fields  quoteFields          `json:"fields"`
	Quote   pricing.Quote        `json:"quote"`
	Display pricing.QuoteDisplay `json:"display"`
	Rate    *rates.State         `json:"rate,omitempty"`
	Content *content.Content     `json:"content,omitempty"`
}

func (h *QuoteHandler) calculate(endpoint string, fields quoteFields) quoteResponse {
	q := pricing.CalculateText(string(fields.PurchasePrice), string(fields.ShippingFee), string(fields.ExchangeRate))
	if h.recorder != nil {
		h.recorder.RecordQuote(endpoint)
	}
	return quoteResponse{Fields: fields, Quote: q, Display: q.Display()}
}

// Calculator renders the whole results panel from query parameters. When
// exchange_rate is absent the tracker's working rate is used, as the form
// field is pre-filled with it.
func (h *QuoteHandler) Calculator(c *fiber.Ctx) error {
	fields := quoteFields{
		PurchasePrice: fieldText(c.Query("purchase_price")),
		ShippingFee:   fieldText(c.Query("shipping_fee")),
		ExchangeRate:  fieldText(c.Query("exchange_rate")),
	}
	state := h.tracker.State()
	if !c.Context().QueryArgs().Has("exchange_rate") {
		fields.ExchangeRate = fieldText(state.WorkingRate)
	}

	resp := h.calculate("calculator", fields)
	resp.Rate = &state
	resp.Content = &h.content
	return response.Success(c, resp)
}

// Quote calculates from a JSON body. Fields may be strings or numbers;
// anything unparseable counts as zero.
func (h *QuoteHandler) Quote(c *fiber.Ctx) error {
	var fields quoteFields
	if err := c.BodyParser(&fields); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	return response.Success(c, h.calculate("quote", fields))
}

func (h *QuoteHandler) Content(c *fiber.Ctx) error {
	return response.Success(c, h.content)
}
