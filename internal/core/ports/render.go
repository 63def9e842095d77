package ports

import "github.com/SscSPs/crypto_pulse/internal/core/domain"

// SurfaceHandle is an owned handle to one live drawing context.
// After Dispose every subscription channel is closed and ReplaceSeries fails.
type SurfaceHandle interface {
	ID() string
	Region() domain.RegionID
	Config() domain.SurfaceConfig

	// ReplaceSeries swaps the whole displayed series.
	ReplaceSeries(series domain.PriceSeries) error
	Series() domain.PriceSeries

	// Subscribe returns a channel that receives the series after each replacement.
	Subscribe() (<-chan domain.PriceSeries, error)

	// Dispose releases subscriptions and internal timers. Safe to call twice.
	Dispose()
	Disposed() bool
}

// RenderEngine creates surfaces bound to display regions.
// Creating a surface on a region that still has a live one fails with apperrors.ErrRegionBound.
type RenderEngine interface {
	CreateSurface(region domain.RegionID, cfg domain.SurfaceConfig) (SurfaceHandle, error)
}
