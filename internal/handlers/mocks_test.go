package handlers_test

import (
	"context"

	"github.com/SscSPs/crypto_pulse/internal/core/domain"
	portssvc "github.com/SscSPs/crypto_pulse/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock ChartService ---
type MockChartService struct {
	mock.Mock
}

func (m *MockChartService) Currencies(ctx context.Context) (domain.CurrencyCode, domain.SupportedCurrencies, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.CurrencyCode), args.Get(1).(domain.SupportedCurrencies), args.Error(2)
}

func (m *MockChartService) Snapshot(ctx context.Context) (domain.ChartSnapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ChartSnapshot), args.Error(1)
}

func (m *MockChartService) FetchStats(ctx context.Context) (domain.FetchStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.FetchStats), args.Error(1)
}

func (m *MockChartService) SurfaceStats(ctx context.Context) (domain.SurfaceStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.SurfaceStats), args.Error(1)
}

func (m *MockChartService) SelectCurrency(ctx context.Context, code domain.CurrencyCode) (domain.CurrencyCode, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(domain.CurrencyCode), args.Error(1)
}

func (m *MockChartService) Subscribe(ctx context.Context) (<-chan domain.PriceSeries, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.PriceSeries), args.Error(1)
}

// --- Mock MapService ---
type MockMapService struct {
	mock.Mock
}

func (m *MockMapService) Config() (domain.SurfaceConfig, bool) {
	args := m.Called()
	return args.Get(0).(domain.SurfaceConfig), args.Bool(1)
}

// Ensure mocks implement the interfaces
var (
	_ portssvc.ChartSvcFacade = (*MockChartService)(nil)
	_ portssvc.MapSvc         = (*MockMapService)(nil)
)
