package coingecko_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/crypto_pulse/internal/adapters/marketdata/coingecko"
	"github.com/SscSPs/crypto_pulse/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *coingecko.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return coingecko.NewClient(coingecko.Config{
		BaseURL: server.URL,
		AssetID: "bitcoin",
		Timeout: 2 * time.Second,
	}, nil)
}

func TestClient_SupportedCurrencies(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/supported_vs_currencies", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(`["btc","eth","usd","eur"]`))
	})

	codes, err := client.SupportedCurrencies(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.CurrencyCode{"btc", "eth", "usd", "eur"}, codes)
}

func TestClient_SupportedCurrencies_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"status":{"error_code":429}}`},
		{name: "not an array", status: http.StatusOK, body: `{"currencies":["usd"]}`},
		{name: "non string entry", status: http.StatusOK, body: `["usd", 12]`},
		{name: "invalid json", status: http.StatusOK, body: `["usd",`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			codes, err := client.SupportedCurrencies(context.Background())

			assert.Error(t, err)
			assert.Nil(t, codes)
		})
	}
}

func TestClient_PriceHistory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/bitcoin/market_chart", r.URL.Path)
		assert.Equal(t, "eur", r.URL.Query().Get("vs_currency"))
		assert.Equal(t, "7", r.URL.Query().Get("days"))
		w.Write([]byte(`{"prices":[[1000,50.5],[2000,51.25]],"market_caps":[],"total_volumes":[]}`))
	})

	prices, err := client.PriceHistory(context.Background(), "eur", domain.LookbackDays)

	require.NoError(t, err)
	assert.Equal(t, []domain.RawPrice{
		{TimestampMillis: 1000, Price: 50.5},
		{TimestampMillis: 2000, Price: 51.25},
	}, prices)
}

func TestClient_PriceHistory_PreservesProviderOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"prices":[[3000,3],[1000,1],[2000,2]]}`))
	})

	prices, err := client.PriceHistory(context.Background(), "usd", 7)

	require.NoError(t, err)
	require.Len(t, prices, 3)
	assert.Equal(t, int64(3000), prices[0].TimestampMillis)
	assert.Equal(t, int64(1000), prices[1].TimestampMillis)
}

func TestClient_PriceHistory_EmptyPrices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"prices":[]}`))
	})

	prices, err := client.PriceHistory(context.Background(), "usd", 7)

	require.NoError(t, err)
	assert.Empty(t, prices)
}

func TestClient_PriceHistory_Malformed(t *testing.T) {
	bodies := map[string]string{
		"missing prices":  `{"market_caps":[]}`,
		"short pair":      `{"prices":[[1000]]}`,
		"string price":    `{"prices":[[1000,"50"]]}`,
		"object instead":  `{"prices":[{"t":1000,"p":50}]}`,
		"prices not list": `{"prices":"none"}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})

			_, err := client.PriceHistory(context.Background(), "usd", 7)

			assert.ErrorIs(t, err, coingecko.ErrMalformedResponse)
		})
	}
}

func TestClient_RespectsContextCancellation(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	prices, err := client.PriceHistory(ctx, "usd", 7)

	assert.Error(t, err)
	assert.Nil(t, prices)
	assert.Error(t, ctx.Err())
}
