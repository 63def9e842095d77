package ports

import (
	"context"

	"github.com/SscSPs/crypto_pulse/internal/core/domain"
)

// CurrencyLister retrieves the provider's list of supported pricing currencies.
type CurrencyLister interface {
	SupportedCurrencies(ctx context.Context) ([]domain.CurrencyCode, error)
}

// PriceHistorySource retrieves daily price samples of the tracked asset for the last `days` days,
// priced in currency. Pairs are returned in provider order.
type PriceHistorySource interface {
	PriceHistory(ctx context.Context, currency domain.CurrencyCode, days int) ([]domain.RawPrice, error)
}

// MarketDataSource combines both read-only market data operations.
type MarketDataSource interface {
	CurrencyLister
	PriceHistorySource
}
