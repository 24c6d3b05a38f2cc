package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petquote/internal/content"
	"petquote/internal/metrics"
	"petquote/internal/models"
	"petquote/internal/repositories"
	"petquote/internal/services/auth"
	"petquote/internal/services/rates"
)

// fakeAuth accepts the tokens "full" and "readonly".
type fakeAuth struct{}

func (fakeAuth) Login(ctx context.Context, email, password string) (string, *models.Operator, error) {
	if email == "down@example.com" {
		return "", nil, fmt.Errorf("look up operator: %w", repositories.ErrDatabaseOperation)
	}
	if email != "ops@example.com" || password != "secret" {
		return "", nil, auth.ErrInvalidCredentials
	}
	op := &models.Operator{Email: email}
	op.ID = 7
	return "full", op, nil
}

func (fakeAuth) ParseToken(token string) (*models.OperatorClaims, error) {
	switch token {
	case "full":
		return &models.OperatorClaims{OperatorID: 7, Permissions: models.DefaultOperatorPermissions()}, nil
	case "readonly":
		return &models.OperatorClaims{OperatorID: 8, Permissions: []string{models.PermissionRatesRead}}, nil
	case "stale":
		return &models.OperatorClaims{OperatorID: 9}, nil
	}
	return nil, auth.ErrInvalidToken
}

func (fakeAuth) Verify(ctx context.Context, claims *models.OperatorClaims) error {
	if claims.OperatorID == 9 {
		return auth.ErrSessionExpired
	}
	return nil
}

type flushCounter struct{ calls int }

func (f *flushCounter) Invalidate(ctx context.Context) error {
	f.calls++
	return nil
}

func newApp(t *testing.T, withAuth bool) (*fiber.App, *flushCounter, *repositories.RateSnapshotRepositoryMemory) {
	t.Helper()
	provider := rates.NewFixedProvider()
	snapshots := repositories.NewRateSnapshotRepositoryMemory(10)
	flush := &flushCounter{}

	deps := Dependencies{
		Provider:  provider,
		Tracker:   rates.NewTracker(provider),
		Cache:     flush,
		Snapshots: snapshots,
		Content:   content.Default(),
		Metrics:   metrics.NewCollector(),
	}
	if withAuth {
		deps.Auth = fakeAuth{}
	}

	app := fiber.New()
	SetupRoutes(app, deps)
	return app, flush, snapshots
}

func request(t *testing.T, app *fiber.App, method, path, token, body string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestSetupRoutes_PublicRoutes(t *testing.T) {
	app, _, _ := newApp(t, false)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/"},
		{http.MethodGet, "/health"},
		{http.MethodGet, "/api/exchange-rate"},
		{http.MethodGet, "/api/rate"},
		{http.MethodPost, "/api/rate/refresh"},
		{http.MethodGet, "/api/calculator"},
		{http.MethodGet, "/api/content"},
	} {
		status, _ := request(t, app, tc.method, tc.path, "", "")
		assert.Equal(t, http.StatusOK, status, tc.path)
	}

	status, _ := request(t, app, http.MethodPost, "/api/quote", "", `{"purchase_price":"1"}`)
	assert.Equal(t, http.StatusOK, status)
}

func TestSetupRoutes_AdminNotMountedWithoutAuth(t *testing.T) {
	app, _, _ := newApp(t, false)

	status, _ := request(t, app, http.MethodPost, "/api/admin/login", "", `{"email":"ops@example.com","password":"secret"}`)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSetupRoutes_AdminLogin(t *testing.T) {
	app, _, _ := newApp(t, true)

	status, body := request(t, app, http.MethodPost, "/api/admin/login", "", `{"email":"ops@example.com","password":"secret"}`)
	require.Equal(t, http.StatusOK, status)

	var out struct {
		Token    string `json:"token"`
		Operator struct {
			ID    uint   `json:"id"`
			Email string `json:"email"`
		} `json:"operator"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, "full", out.Token)
	assert.Equal(t, uint(7), out.Operator.ID)

	status, _ = request(t, app, http.MethodPost, "/api/admin/login", "", `{"email":"ops@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = request(t, app, http.MethodPost, "/api/admin/login", "", `{"email":""}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = request(t, app, http.MethodPost, "/api/admin/login", "", `{"email":"down@example.com","password":"secret"}`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, body, "login failed")
}

func TestSetupRoutes_AdminLoginRateLimited(t *testing.T) {
	app, _, _ := newApp(t, true)

	var last int
	for i := 0; i < 6; i++ {
		last, _ = request(t, app, http.MethodPost, "/api/admin/login", "", `{"email":"ops@example.com","password":"wrong"}`)
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestSetupRoutes_AdminRates(t *testing.T) {
	app, flush, snapshots := newApp(t, true)
	ctx := context.Background()
	require.NoError(t, snapshots.Record(ctx, models.NewRateSnapshot(rates.DefaultRate(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)))))

	status, _ := request(t, app, http.MethodGet, "/api/admin/rates", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = request(t, app, http.MethodGet, "/api/admin/rates", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := request(t, app, http.MethodGet, "/api/admin/rates", "stale", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body, "session expired")

	status, body = request(t, app, http.MethodGet, "/api/admin/rates?limit=5", "readonly", "")
	require.Equal(t, http.StatusOK, status)
	var out struct {
		Snapshots []models.RateSnapshot `json:"snapshots"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	require.Len(t, out.Snapshots, 1)
	assert.Equal(t, 29.575, out.Snapshots[0].BaseRate)

	status, _ = request(t, app, http.MethodPost, "/api/admin/rates/cache/flush", "readonly", "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, 0, flush.calls)

	status, body = request(t, app, http.MethodPost, "/api/admin/rates/cache/flush", "full", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"flushed":true}`, body)
	assert.Equal(t, 1, flush.calls)
}

func TestSetupRoutes_Metrics(t *testing.T) {
	app, _, _ := newApp(t, false)

	request(t, app, http.MethodGet, "/api/calculator?purchase_price=10&exchange_rate=30", "", "")
	status, body := request(t, app, http.MethodGet, "/metrics", "", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `petquote_quotes_total{endpoint="calculator"} 1`)
}
