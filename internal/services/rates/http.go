package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"petquote/internal/models"
)

const exchangeRatePath = "/api/exchange-rate"

// HTTPProvider reads the rate from another service's exchange-rate endpoint.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

// NewHTTPProvider creates a provider for GET {baseURL}/api/exchange-rate.
// A nil client gets a 10 second timeout.
func NewHTTPProvider(baseURL string, client *http.Client) *HTTPProvider {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  client,
		now:     time.Now,
	}
}

func (p *HTTPProvider) Name() string { return SourceHTTP }

type exchangeRateResponse struct {
	Success      bool     `json:"success"`
	BankBuyRate  float64  `json:"bank_buy_rate"`
	BankSellRate float64  `json:"bank_sell_rate"`
	BaseRate     *float64 `json:"base_rate"`
	PaypalRate   *float64 `json:"paypal_rate"`
	Timestamp    string   `json:"timestamp"`
	Note         string   `json:"note"`
	Error        string   `json:"error"`
}

func (p *HTTPProvider) FetchRate(ctx context.Context) (models.ExchangeRate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+exchangeRatePath, nil)
	if err != nil {
		return models.ExchangeRate{}, fmt.Errorf("create rate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return models.ExchangeRate{}, fmt.Errorf("request rate: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.ExchangeRate{}, fmt.Errorf("read rate response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return models.ExchangeRate{}, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, summarize(body))
	}

	var payload exchangeRateResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.ExchangeRate{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if !payload.Success {
		return models.ExchangeRate{}, fmt.Errorf("%w: %s", ErrUpstreamUnsuccessful, payload.Error)
	}
	if payload.BaseRate == nil || payload.PaypalRate == nil {
		return models.ExchangeRate{}, fmt.Errorf("%w: missing base_rate or paypal_rate", ErrMalformedResponse)
	}

	rate := models.ExchangeRate{
		BankBuyRate:  payload.BankBuyRate,
		BankSellRate: payload.BankSellRate,
		BaseRate:     *payload.BaseRate,
		PaypalRate:   *payload.PaypalRate,
		Timestamp:    payload.Timestamp,
		Note:         payload.Note,
		Source:       SourceHTTP,
	}
	if rate.Timestamp == "" {
		rate.Timestamp = p.now().Format(timestampLayout)
	}
	return rate, nil
}

func summarize(body []byte) string {
	s := strings.Join(strings.Fields(string(body)), " ")
	if len(s) > 120 {
		return s[:120] + "..."
	}
	return s
}
