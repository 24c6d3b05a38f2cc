package rates

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"petquote/internal/models"
)

const (
	DefaultBOTURL = "https://rate.bot.com.tw/xrt?Lang=zh-TW"

	botUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// BankOfTaiwanProvider scrapes the USD spot rates from the Bank of Taiwan
// rate table. The sell rate is the bank rate.
type BankOfTaiwanProvider struct {
	pageURL string
	client  *http.Client
}

func NewBankOfTaiwanProvider(pageURL string, client *http.Client) *BankOfTaiwanProvider {
	if strings.TrimSpace(pageURL) == "" {
		pageURL = DefaultBOTURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &BankOfTaiwanProvider{pageURL: pageURL, client: client}
}

func (p *BankOfTaiwanProvider) Name() string { return SourceBOT }

func (p *BankOfTaiwanProvider) FetchRate(ctx context.Context) (models.ExchangeRate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.pageURL, nil)
	if err != nil {
		return models.ExchangeRate{}, fmt.Errorf("create bot request: %w", err)
	}
	req.Header.Set("User-Agent", botUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return models.ExchangeRate{}, fmt.Errorf("request bot rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.ExchangeRate{}, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return models.ExchangeRate{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	buy, sell, err := parseUSDSpotRates(doc)
	if err != nil {
		return models.ExchangeRate{}, err
	}

	return models.ExchangeRate{
		BankBuyRate:  buy,
		BankSellRate: sell,
		BaseRate:     sell,
		PaypalRate:   WorkingRate(sell),
		Timestamp:    resp.Header.Get("Date"),
		Source:       SourceBOT,
	}, nil
}

// parseUSDSpotRates reads spot buy and sell from the first row mentioning USD.
// Columns 2 and 3 of that row hold the spot rates.
func parseUSDSpotRates(doc *goquery.Document) (buy, sell float64, err error) {
	var row *goquery.Selection
	doc.Find("tr").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if strings.Contains(text, "美金") || strings.Contains(text, "USD") {
			row = s
			return false
		}
		return true
	})
	if row == nil {
		return 0, 0, ErrRateNotFound
	}

	cells := row.Find("td")
	if cells.Length() < 4 {
		return 0, 0, fmt.Errorf("%w: USD row has %d cells", ErrMalformedResponse, cells.Length())
	}

	buy, err = strconv.ParseFloat(strings.TrimSpace(cells.Eq(2).Text()), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: spot buy: %v", ErrMalformedResponse, err)
	}
	sell, err = strconv.ParseFloat(strings.TrimSpace(cells.Eq(3).Text()), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: spot sell: %v", ErrMalformedResponse, err)
	}
	return buy, sell, nil
}
