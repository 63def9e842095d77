package services

import (
	"context"

	"github.com/SscSPs/crypto_pulse/internal/core/domain"
)

// ChartReaderSvc defines read operations for the price chart state
type ChartReaderSvc interface {
	// Currencies returns the active selection and the supported set.
	Currencies(ctx context.Context) (domain.CurrencyCode, domain.SupportedCurrencies, error)

	// Snapshot returns a consistent read of the chart state.
	Snapshot(ctx context.Context) (domain.ChartSnapshot, error)

	FetchStats(ctx context.Context) (domain.FetchStats, error)
	SurfaceStats(ctx context.Context) (domain.SurfaceStats, error)
}

// ChartWriterSvc defines the currency selection command
type ChartWriterSvc interface {
	// SelectCurrency switches the chart to code and returns the resulting selection.
	SelectCurrency(ctx context.Context, code domain.CurrencyCode) (domain.CurrencyCode, error)
}

// ChartStreamSvc gives access to series updates of the live surface
type ChartStreamSvc interface {
	// Subscribe returns a channel closed when the live surface is disposed.
	Subscribe(ctx context.Context) (<-chan domain.PriceSeries, error)
}

// ChartSvcFacade combines all chart-related service interfaces
type ChartSvcFacade interface {
	ChartReaderSvc
	ChartWriterSvc
	ChartStreamSvc
}

// MapSvc exposes the geographic panel
type MapSvc interface {
	Config() (domain.SurfaceConfig, bool)
}
