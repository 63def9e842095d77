package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SscSPs/crypto_pulse/internal/apperrors"
	"github.com/SscSPs/crypto_pulse/internal/core/domain"
	"github.com/SscSPs/crypto_pulse/internal/core/ports"
)

// ChartControllerConfig carries the collaborators of a ChartController.
type ChartControllerConfig struct {
	Loop            Executor
	Market          ports.MarketDataSource
	Engine          ports.RenderEngine
	Recorder        DashboardRecorder
	Logger          *slog.Logger
	Asset           domain.Asset
	InitialCurrency domain.CurrencyCode
}

// ChartController keeps the price chart surface in sync with the currency selection.
// Its exported methods are safe to call from any goroutine except the loop itself;
// the wrapped components are only ever touched from loop tasks.
type ChartController struct {
	BaseService
	loop      Executor
	asset     domain.Asset
	selection *CurrencySelection
	owner     *RenderSurfaceOwner
	fetcher   *FetchCoordinator
	loading   *LoadingProjector

	// fetchCtx outlives any single request; cancelled on Teardown and renewed on Mount.
	fetchMu     sync.Mutex
	fetchCtx    context.Context
	cancelFetch context.CancelFunc
	mounted     bool
}

func NewChartController(cfg ChartControllerConfig) *ChartController {
	recorder := cfg.Recorder
	if recorder == nil {
		recorder = nopRecorder{}
	}

	loading := NewLoadingProjector(recorder)
	owner := NewRenderSurfaceOwner(cfg.Engine, recorder, cfg.Logger)
	fetchCtx, cancel := context.WithCancel(context.Background())

	c := &ChartController{
		BaseService: newBaseService(cfg.Logger, "chart_controller"),
		loop:        cfg.Loop,
		asset:       cfg.Asset,
		selection:   NewCurrencySelection(cfg.Market, cfg.Loop, cfg.InitialCurrency, cfg.Logger),
		owner:       owner,
		fetcher:     NewFetchCoordinator(cfg.Market, cfg.Loop, owner, loading, recorder, cfg.Logger),
		loading:     loading,
		fetchCtx:    fetchCtx,
		cancelFetch: cancel,
	}
	c.selection.Observe(func(domain.CurrencyCode) {
		if c.mounted {
			c.sync()
		}
	})
	loading.OnChange(func(on bool) {
		c.logger.Debug("Loading changed", slog.Bool("loading", on), slog.Uint64("generation", uint64(c.fetcher.Generation())))
	})
	return c
}

// Mount binds the chart to region and performs the first synchronization.
func (c *ChartController) Mount(ctx context.Context, region domain.RegionID) error {
	return c.loop.Call(ctx, func() {
		c.renewFetchContext()
		c.owner.AttachRegion(region)
		c.mounted = true
		c.sync()
	})
}

// DetachRegion reports the display region as unavailable: the surface is disposed and
// any outstanding retrieval is orphaned.
func (c *ChartController) DetachRegion(ctx context.Context) error {
	return c.loop.Call(ctx, func() {
		c.owner.DetachRegion()
		c.fetcher.Invalidate()
	})
}

// Bootstrap replaces the default currency list with the provider's. Failures are
// recovered locally and returned only for logging.
func (c *ChartController) Bootstrap(ctx context.Context) error {
	return c.selection.LoadSupported(ctx)
}

// SelectCurrency validates code against the supported set and then switches to it.
func (c *ChartController) SelectCurrency(ctx context.Context, code domain.CurrencyCode) (domain.CurrencyCode, error) {
	code = domain.NormalizeCurrencyCode(code.String())
	var (
		selected  domain.CurrencyCode
		supported bool
	)
	err := c.loop.Call(ctx, func() {
		supported = c.selection.Supported().Contains(code)
		if supported {
			c.selection.SetSelected(code)
		}
		selected = c.selection.Selected()
	})
	if err != nil {
		return "", err
	}
	if !supported {
		return selected, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedCurrency, code)
	}
	return selected, nil
}

// Currencies returns the active selection and the supported set.
func (c *ChartController) Currencies(ctx context.Context) (domain.CurrencyCode, domain.SupportedCurrencies, error) {
	var (
		selected  domain.CurrencyCode
		supported domain.SupportedCurrencies
	)
	err := c.loop.Call(ctx, func() {
		selected = c.selection.Selected()
		supported = c.selection.Supported()
	})
	return selected, supported, err
}

// Snapshot reads the full chart state in one loop task.
func (c *ChartController) Snapshot(ctx context.Context) (domain.ChartSnapshot, error) {
	var snap domain.ChartSnapshot
	err := c.loop.Call(ctx, func() {
		snap = domain.ChartSnapshot{
			Currency:   c.selection.Selected(),
			Supported:  c.selection.Supported(),
			Loading:    c.loading.Loading(),
			Generation: c.fetcher.Generation(),
			Series:     domain.PriceSeries{},
		}
		if surface := c.owner.Current(); surface != nil {
			snap.SurfaceID = surface.ID()
			snap.Config = surface.Config()
			snap.Series = surface.Series()
		}
		snap.Summary = domain.Summarize(snap.Series)
	})
	return snap, err
}

// Subscribe returns the update channel of the live surface. The channel is closed when
// that surface is disposed; callers resubscribe to follow the replacement.
func (c *ChartController) Subscribe(ctx context.Context) (<-chan domain.PriceSeries, error) {
	var (
		ch  <-chan domain.PriceSeries
		err error
	)
	if callErr := c.loop.Call(ctx, func() {
		surface := c.owner.Current()
		if surface == nil {
			err = apperrors.ErrSurfaceDisposed
			return
		}
		ch, err = surface.Subscribe()
	}); callErr != nil {
		return nil, callErr
	}
	return ch, err
}

// FetchStats returns retrieval counters.
func (c *ChartController) FetchStats(ctx context.Context) (domain.FetchStats, error) {
	var stats domain.FetchStats
	err := c.loop.Call(ctx, func() { stats = c.fetcher.Stats() })
	return stats, err
}

// SurfaceStats returns surface lifecycle counters.
func (c *ChartController) SurfaceStats(ctx context.Context) (domain.SurfaceStats, error) {
	var stats domain.SurfaceStats
	err := c.loop.Call(ctx, func() { stats = c.owner.Stats() })
	return stats, err
}

// Teardown disposes the live surface and abandons outstanding retrievals.
// Intended to be invoked once by the host on shutdown; later calls are no-ops.
func (c *ChartController) Teardown(ctx context.Context) error {
	err := c.loop.Call(ctx, func() {
		if !c.mounted {
			return
		}
		c.mounted = false
		c.owner.Teardown()
		c.fetcher.Invalidate()
		c.logger.Info("Chart torn down")
	})
	c.fetchMu.Lock()
	c.cancelFetch()
	c.fetchMu.Unlock()
	return err
}

// renewFetchContext replaces a fetch context cancelled by an earlier Teardown.
func (c *ChartController) renewFetchContext() {
	c.fetchMu.Lock()
	defer c.fetchMu.Unlock()
	if c.fetchCtx.Err() != nil {
		c.fetchCtx, c.cancelFetch = context.WithCancel(context.Background())
	}
}

func (c *ChartController) currentFetchContext() context.Context {
	c.fetchMu.Lock()
	defer c.fetchMu.Unlock()
	return c.fetchCtx
}

// sync rebuilds the surface for the current selection and starts a new generation.
func (c *ChartController) sync() {
	currency := c.selection.Selected()
	handle, err := c.owner.Rebuild(domain.NewPriceChartConfig(c.asset, currency))
	if err != nil {
		c.LogError(err, "Chart surface rebuild failed", slog.String("currency", currency.String()))
		c.fetcher.Invalidate()
		return
	}
	if handle == nil {
		c.fetcher.Invalidate()
		return
	}
	c.fetcher.Begin(c.currentFetchContext(), currency)
}
