package services

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/SscSPs/crypto_pulse/internal/core/domain"
	"github.com/SscSPs/crypto_pulse/internal/core/ports"
)

// GeoPanel owns the static world map surface. It has its own engine and region and
// is never rebuilt on currency changes.
type GeoPanel struct {
	BaseService
	engine   ports.RenderEngine
	region   domain.RegionID
	recorder DashboardRecorder

	mu     sync.Mutex
	handle ports.SurfaceHandle
}

func NewGeoPanel(engine ports.RenderEngine, region domain.RegionID, recorder DashboardRecorder, logger *slog.Logger) *GeoPanel {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &GeoPanel{
		BaseService: newBaseService(logger, "geo_panel"),
		engine:      engine,
		region:      region,
		recorder:    recorder,
	}
}

// Mount creates the map surface. Mounting twice is a no-op.
func (p *GeoPanel) Mount() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle != nil {
		return nil
	}
	handle, err := p.engine.CreateSurface(p.region, domain.NewWorldMapConfig())
	if err != nil {
		return fmt.Errorf("failed to mount geo panel on region %s: %w", p.region, err)
	}
	p.handle = handle
	p.recorder.RecordSurfaceCreated(string(p.region))
	p.logger.Info("Geo panel mounted", slog.String("surface_id", handle.ID()))
	return nil
}

// Config returns the mounted map configuration.
func (p *GeoPanel) Config() (domain.SurfaceConfig, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle == nil {
		return domain.SurfaceConfig{}, false
	}
	return p.handle.Config(), true
}

// Teardown disposes the map surface if mounted.
func (p *GeoPanel) Teardown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle == nil {
		return
	}
	p.handle.Dispose()
	p.handle = nil
	p.recorder.RecordSurfaceDisposed(string(p.region))
	p.logger.Info("Geo panel torn down")
}
