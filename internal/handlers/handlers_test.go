package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petquote/internal/content"
	"petquote/internal/models"
	"petquote/internal/services/rates"
)

type brokenProvider struct{}

func (brokenProvider) Name() string { return "broken" }

func (brokenProvider) FetchRate(ctx context.Context) (models.ExchangeRate, error) {
	return models.ExchangeRate{}, errors.New("no route to host")
}

type countingRecorder struct {
	endpoints []string
}

func (r *countingRecorder) RecordQuote(endpoint string) {
	r.endpoints = append(r.endpoints, endpoint)
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestApp(t *testing.T, provider rates.Provider) (*fiber.App, *rates.Tracker, *countingRecorder) {
	t.Helper()
	tracker := rates.NewTracker(provider)
	recorder := &countingRecorder{}

	rateHandler := NewRateHandler(provider, tracker)
	quoteHandler := NewQuoteHandler(tracker, content.Default(), recorder)

	app := fiber.New()
	app.Get("/api/exchange-rate", rateHandler.GetExchangeRate)
	app.Get("/api/rate", rateHandler.GetRate)
	app.Post("/api/rate/refresh", rateHandler.RefreshRate)
	app.Get("/api/calculator", quoteHandler.Calculator)
	app.Post("/api/quote", quoteHandler.Quote)
	app.Get("/api/content", quoteHandler.Content)
	return app, tracker, recorder
}

func doJSON(t *testing.T, app *fiber.App, req *http.Request, out interface{}) int {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.Unmarshal(body, out), string(body))
	}
	return resp.StatusCode
}

func TestRateHandler_GetExchangeRate(t *testing.T) {
	t.Run("fixed rate", func(t *testing.T) {
		app, _, _ := newTestApp(t, rates.NewFixedProvider())

		var body map[string]interface{}
		status := doJSON(t, app, httptest.NewRequest(http.MethodGet, "/api/exchange-rate", nil), &body)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, 29.575, body["base_rate"])
		assert.Equal(t, 32.5325, body["paypal_rate"])
		assert.Equal(t, 29.425, body["bank_buy_rate"])
		assert.Equal(t, "fixed", body["source"])
		assert.NotEmpty(t, body["note"])
	})

	t.Run("provider error", func(t *testing.T) {
		app, _, _ := newTestApp(t, brokenProvider{})

		var body map[string]string
		status := doJSON(t, app, httptest.NewRequest(http.MethodGet, "/api/exchange-rate", nil), &body)

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "exchange rate unavailable", body["error"])
	})
}

func TestRateHandler_Refresh(t *testing.T) {
	app, _, _ := newTestApp(t, rates.NewFixedProvider())

	var before rates.State
	doJSON(t, app, httptest.NewRequest(http.MethodGet, "/api/rate", nil), &before)
	assert.Nil(t, before.BankRate)

	var after rates.State
	status := doJSON(t, app, httptest.NewRequest(http.MethodPost, "/api/rate/refresh", nil), &after)
	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, after.BankRate)
	assert.Equal(t, 29.575, *after.BankRate)
	assert.Equal(t, "32.5325", after.WorkingRate)
	assert.False(t, after.Loading)
}

func TestRateHandler_RefreshFailureKeepsState(t *testing.T) {
	app, _, _ := newTestApp(t, brokenProvider{})

	var state rates.State
	status := doJSON(t, app, httptest.NewRequest(http.MethodPost, "/api/rate/refresh", nil), &state)
	assert.Equal(t, http.StatusOK, status)
	assert.Nil(t, state.BankRate)
}

type calculatorBody struct {
	Fields  map[string]string      `json:"fields"`
	Quote   map[string]float64     `json:"quote"`
	Display map[string]string      `json:"display"`
	Rate    *rates.State           `json:"rate"`
	Content map[string]interface{} `json:"content"`
}

func TestQuoteHandler_Calculator(t *testing.T) {
	app, tracker, recorder := newTestApp(t, rates.NewFixedProvider())
	_, err := tracker.Refresh(context.Background())
	require.NoError(t, err)

	t.Run("uses the working rate when no rate is given", func(t *testing.T) {
		var body calculatorBody
		status := doJSON(t, app, httptest.NewRequest(http.MethodGet, "/api/calculator?purchase_price=1100&shipping_fee=80", nil), &body)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "32.5325", body.Fields["exchange_rate"])
		assert.InDelta(t, 54391.7374, body.Quote["total_price"], 1e-6)
		assert.Equal(t, "54391.74", body.Display["total_price"])
		assert.Equal(t, "51.92", body.Display["paypal_fee"])
		require.NotNil(t, body.Rate)
		assert.Equal(t, 29.575, *body.Rate.BankRate)
		assert.NotEmpty(t, body.Content["links"])
	})

	t.Run("blank rate counts as zero", func(t *testing.T) {
		var body calculatorBody
		doJSON(t, app, httptest.NewRequest(http.MethodGet, "/api/calculator?purchase_price=1100&shipping_fee=80&exchange_rate=", nil), &body)

		assert.Equal(t, 1180.0, body.Quote["total_usd"])
		assert.Equal(t, 0.0, body.Quote["total_price"])
		assert.Equal(t, "0.0000", body.Display["exchange_rate"])
	})

	t.Run("nothing entered", func(t *testing.T) {
		var body calculatorBody
		doJSON(t, app, httptest.NewRequest(http.MethodGet, "/api/calculator?exchange_rate=abc", nil), &body)

		for _, key := range []string{"total_usd", "paypal_fee", "paypal_deduction_usd", "paypal_deduction_local", "service_fee", "total_price"} {
			assert.Equal(t, 0.0, body.Quote[key], key)
		}
	})

	assert.Equal(t, []string{"calculator", "calculator", "calculator"}, recorder.endpoints)
}

func TestQuoteHandler_Quote(t *testing.T) {
	app, _, _ := newTestApp(t, rates.NewFixedProvider())

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantTotal  float64
	}{
		{"strings", `{"purchase_price":"1100","shipping_fee":"80","exchange_rate":"32.5325"}`, http.StatusOK, 54391.7374},
		{"numbers", `{"purchase_price":1100,"shipping_fee":80,"exchange_rate":32.5325}`, http.StatusOK, 54391.7374},
		{"junk fields", `{"purchase_price":"abc","shipping_fee":null,"exchange_rate":true}`, http.StatusOK, 0},
		{"missing fields", `{}`, http.StatusOK, 0},
		{"malformed body", `{"purchase_price":`, http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/quote", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			var body calculatorBody
			var errBody map[string]string
			var out interface{} = &body
			if tt.wantStatus != http.StatusOK {
				out = &errBody
			}

			status := doJSON(t, app, req, out)
			assert.Equal(t, tt.wantStatus, status)
			if tt.wantStatus == http.StatusOK {
				assert.InDelta(t, tt.wantTotal, body.Quote["total_price"], 1e-6)
				assert.Nil(t, body.Rate)
			} else {
				assert.NotEmpty(t, errBody["error"])
			}
		})
	}
}

func TestQuoteHandler_Content(t *testing.T) {
	app, _, _ := newTestApp(t, rates.NewFixedProvider())

	var body content.Content
	status := doJSON(t, app, httptest.NewRequest(http.MethodGet, "/api/content", nil), &body)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, content.Default(), body)
}

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler("test", map[string]Pinger{
		"redis":    pingFunc(func(context.Context) error { return nil }),
		"database": nil,
		"upstream": pingFunc(func(context.Context) error { return errors.New("down") }),
	})
	app := fiber.New()
	app.Get("/health", h.HealthCheck)

	var body struct {
		Status   string            `json:"status"`
		Version  string            `json:"version"`
		Services map[string]string `json:"services"`
	}
	doJSON(t, app, httptest.NewRequest(http.MethodGet, "/health", nil), &body)

	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "test", body.Version)
	assert.Equal(t, "connected", body.Services["redis"])
	assert.Equal(t, "disabled", body.Services["database"])
	assert.Equal(t, "unreachable", body.Services["upstream"])
}
