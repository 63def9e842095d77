package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/crypto_pulse/internal/apperrors"
	"github.com/SscSPs/crypto_pulse/internal/core/domain"
	"github.com/SscSPs/crypto_pulse/internal/core/ports"
)

// SurfaceProvider exposes the surface a settled result should be applied to.
type SurfaceProvider interface {
	Current() ports.SurfaceHandle
}

// FetchCoordinator issues one price retrieval per generation and applies only the result
// whose generation is still live. Begin, Invalidate and Stats run on the event loop;
// retrievals run on their own goroutines and post their settlement back to the loop.
type FetchCoordinator struct {
	BaseService
	source     ports.PriceHistorySource
	exec       Executor
	surfaces   SurfaceProvider
	loading    *LoadingProjector
	recorder   DashboardRecorder
	generation domain.FetchGeneration
	cancel     context.CancelFunc
	stats      domain.FetchStats
}

func NewFetchCoordinator(
	source ports.PriceHistorySource,
	exec Executor,
	surfaces SurfaceProvider,
	loading *LoadingProjector,
	recorder DashboardRecorder,
	logger *slog.Logger,
) *FetchCoordinator {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &FetchCoordinator{
		BaseService: newBaseService(logger, "fetch_coordinator"),
		source:      source,
		exec:        exec,
		surfaces:    surfaces,
		loading:     loading,
		recorder:    recorder,
	}
}

// Generation returns the live generation.
func (c *FetchCoordinator) Generation() domain.FetchGeneration {
	return c.generation
}

func (c *FetchCoordinator) Stats() domain.FetchStats {
	return c.stats
}

// Begin advances the generation and issues the retrieval for currency.
// ctx bounds the retrieval; it is cancelled early once a newer generation starts.
func (c *FetchCoordinator) Begin(ctx context.Context, currency domain.CurrencyCode) domain.FetchGeneration {
	g := c.advance()
	c.loading.Start(g)

	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.stats.Issued++
	c.recorder.RecordFetchIssued(currency.String())
	c.logger.Debug("Price retrieval issued", slog.Uint64("generation", uint64(g)), slog.String("currency", currency.String()))

	started := time.Now()
	go func() {
		raw, err := c.source.PriceHistory(fetchCtx, currency, domain.LookbackDays)
		elapsed := time.Since(started)
		if postErr := c.exec.Post(func() { c.settle(g, currency, raw, err, elapsed) }); postErr != nil {
			cancel()
			c.logger.Debug("Dropping retrieval result, loop stopped", slog.Uint64("generation", uint64(g)))
		}
	}()
	return g
}

// Invalidate advances the generation without issuing a retrieval, so every
// outstanding result is discarded, and clears the loading flag.
func (c *FetchCoordinator) Invalidate() {
	c.advance()
	c.loading.Reset()
}

func (c *FetchCoordinator) advance() domain.FetchGeneration {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.generation++
	return c.generation
}

func (c *FetchCoordinator) settle(g domain.FetchGeneration, currency domain.CurrencyCode, raw []domain.RawPrice, fetchErr error, elapsed time.Duration) {
	if g != c.generation {
		c.stats.Discarded++
		c.recorder.RecordFetchSettled(currency.String(), OutcomeDiscarded, elapsed.Seconds())
		c.logger.Debug("Discarding stale retrieval",
			slog.Uint64("generation", uint64(g)),
			slog.Uint64("live_generation", uint64(c.generation)),
			slog.String("currency", currency.String()),
		)
		return
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	series := domain.PriceSeries{}
	outcome := OutcomeApplied
	if fetchErr != nil {
		outcome = OutcomeFailed
		c.stats.Failed++
		c.LogWarn(fmt.Errorf("%w: %v", apperrors.ErrPriceFetch, fetchErr), "Rendering empty series",
			slog.Uint64("generation", uint64(g)),
			slog.String("currency", currency.String()),
		)
	} else {
		series = domain.SeriesFromRaw(raw)
		c.stats.Applied++
	}
	c.recorder.RecordFetchSettled(currency.String(), outcome, elapsed.Seconds())

	if surface := c.surfaces.Current(); surface != nil {
		if err := surface.ReplaceSeries(series); err != nil {
			c.LogError(err, "Failed to replace series", slog.String("surface_id", surface.ID()))
		}
	}
	c.loading.Finish(g)
	c.logger.Info("Price retrieval settled",
		slog.Uint64("generation", uint64(g)),
		slog.String("currency", currency.String()),
		slog.String("outcome", outcome),
		slog.Int("points", len(series)),
		slog.Duration("elapsed", elapsed),
	)
}
