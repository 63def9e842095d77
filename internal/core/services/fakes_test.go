package services_test

import (
	"context"
	"sync"

	"github.com/SscSPs/crypto_pulse/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type priceResult struct {
	prices []domain.RawPrice
	err    error
}

// fakeMarket answers immediately unless a gate is installed for a currency, in which
// case PriceHistory blocks until a result is sent on the gate.
type fakeMarket struct {
	mu           sync.Mutex
	currencies   []domain.CurrencyCode
	currencyErr  error
	results      map[domain.CurrencyCode]priceResult
	gates        map[domain.CurrencyCode]chan priceResult
	ignoreCancel bool
	calls        []domain.CurrencyCode
}

func newFakeMarket() *fakeMarket {
	return &fakeMarket{
		results: make(map[domain.CurrencyCode]priceResult),
		gates:   make(map[domain.CurrencyCode]chan priceResult),
	}
}

func (m *fakeMarket) SupportedCurrencies(ctx context.Context) ([]domain.CurrencyCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currencies, m.currencyErr
}

func (m *fakeMarket) PriceHistory(ctx context.Context, currency domain.CurrencyCode, days int) ([]domain.RawPrice, error) {
	m.mu.Lock()
	m.calls = append(m.calls, currency)
	gate, gated := m.gates[currency]
	result := m.results[currency]
	ignoreCancel := m.ignoreCancel
	m.mu.Unlock()

	if !gated {
		return result.prices, result.err
	}
	if ignoreCancel {
		r := <-gate
		return r.prices, r.err
	}
	select {
	case r := <-gate:
		return r.prices, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (m *fakeMarket) respond(currency domain.CurrencyCode, prices []domain.RawPrice, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[currency] = priceResult{prices: prices, err: err}
}

func (m *fakeMarket) gate(currency domain.CurrencyCode) chan priceResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan priceResult, 1)
	m.gates[currency] = ch
	return ch
}

func (m *fakeMarket) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// MockCurrencyLister is used where only the currency list matters.
type MockCurrencyLister struct {
	mock.Mock
}

func (m *MockCurrencyLister) SupportedCurrencies(ctx context.Context) ([]domain.CurrencyCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyCode), args.Error(1)
}

// inlineExecutor runs tasks on the calling goroutine.
type inlineExecutor struct{}

func (inlineExecutor) Post(fn func()) error { fn(); return nil }

func (inlineExecutor) Call(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fn()
	return nil
}

func prices(values ...float64) []domain.RawPrice {
	out := make([]domain.RawPrice, len(values))
	for i, v := range values {
		out[i] = domain.RawPrice{TimestampMillis: int64(i+1) * 1000, Price: v}
	}
	return out
}
