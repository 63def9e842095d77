// Package coingecko reads supported currencies and price history from the CoinGecko public API.
package coingecko

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/crypto_pulse/internal/core/domain"
	"github.com/SscSPs/crypto_pulse/internal/core/ports"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.coingecko.com/api/v3"

	supportedCurrenciesPath = "/simple/supported_vs_currencies"
	marketChartPathFormat   = "/coins/%s/market_chart"

	maxBodyBytes  = 8 << 20
	maxErrorBytes = 512
	userAgent     = "CryptoPulse/1.0"
)

// ErrMalformedResponse indicates a 2xx response whose payload does not have the expected shape.
var ErrMalformedResponse = errors.New("malformed market data response")

var _ ports.MarketDataSource = (*Client)(nil)

// Config configures a Client.
type Config struct {
	BaseURL           string
	AssetID           string
	Timeout           time.Duration
	RequestsPerSecond float64 // zero disables throttling
	HTTPClient        *http.Client
}

// Client is a read-only CoinGecko client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	assetID    string
	limiter    *rate.Limiter
	log        *slog.Logger
}

func NewClient(cfg Config, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		assetID:    cfg.AssetID,
		limiter:    rate.NewLimiter(limit, 1),
		log:        log.With(slog.String("component", "coingecko")),
	}
}

// SupportedCurrencies returns the provider's list of vs-currencies.
func (c *Client) SupportedCurrencies(ctx context.Context) ([]domain.CurrencyCode, error) {
	body, err := c.get(ctx, supportedCurrenciesPath, nil)
	if err != nil {
		return nil, err
	}

	list := gjson.ParseBytes(body)
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: expected a JSON array of currency codes", ErrMalformedResponse)
	}

	var codes []domain.CurrencyCode
	for i, item := range list.Array() {
		if item.Type != gjson.String {
			return nil, fmt.Errorf("%w: currency at index %d is not a string", ErrMalformedResponse, i)
		}
		codes = append(codes, domain.CurrencyCode(item.String()))
	}
	return codes, nil
}

// PriceHistory returns the `prices` pairs of the asset's market chart in provider order.
func (c *Client) PriceHistory(ctx context.Context, currency domain.CurrencyCode, days int) ([]domain.RawPrice, error) {
	query := url.Values{}
	query.Set("vs_currency", currency.String())
	query.Set("days", strconv.Itoa(days))

	body, err := c.get(ctx, fmt.Sprintf(marketChartPathFormat, url.PathEscape(c.assetID)), query)
	if err != nil {
		return nil, err
	}
	return parsePrices(body)
}

func parsePrices(body []byte) ([]domain.RawPrice, error) {
	prices := gjson.GetBytes(body, "prices")
	if !prices.IsArray() {
		return nil, fmt.Errorf("%w: missing prices array", ErrMalformedResponse)
	}

	pairs := prices.Array()
	out := make([]domain.RawPrice, 0, len(pairs))
	for i, pair := range pairs {
		fields := pair.Array()
		if !pair.IsArray() || len(fields) < 2 {
			return nil, fmt.Errorf("%w: price entry %d is not a [timestamp, price] pair", ErrMalformedResponse, i)
		}
		if fields[0].Type != gjson.Number || fields[1].Type != gjson.Number {
			return nil, fmt.Errorf("%w: price entry %d has non-numeric fields", ErrMalformedResponse, i)
		}
		out = append(out, domain.RawPrice{
			TimestampMillis: fields[0].Int(),
			Price:           fields[1].Float(),
		})
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
		return nil, fmt.Errorf("coingecko %s returned status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("%w: response body exceeds %d bytes", ErrMalformedResponse, maxBodyBytes)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedResponse)
	}

	c.log.Debug("Market data fetched",
		slog.String("path", path),
		slog.Int("bytes", len(body)),
		slog.Duration("latency", time.Since(started)),
	)
	return body, nil
}
