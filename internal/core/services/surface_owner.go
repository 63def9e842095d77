package services

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/crypto_pulse/internal/core/domain"
	"github.com/SscSPs/crypto_pulse/internal/core/ports"
)

// RenderSurfaceOwner exclusively owns at most one live surface bound to its display region.
// A replacement is only created after the previous handle is fully disposed.
// Not safe for concurrent use; the chart controller drives it from the event loop.
type RenderSurfaceOwner struct {
	BaseService
	engine   ports.RenderEngine
	recorder DashboardRecorder
	region   domain.RegionID
	current  ports.SurfaceHandle
	stats    domain.SurfaceStats
}

func NewRenderSurfaceOwner(engine ports.RenderEngine, recorder DashboardRecorder, logger *slog.Logger) *RenderSurfaceOwner {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &RenderSurfaceOwner{
		BaseService: newBaseService(logger, "surface_owner"),
		engine:      engine,
		recorder:    recorder,
	}
}

// AttachRegion makes region available. The surface is built by the next Rebuild.
// Moving to a different region disposes the handle bound to the old one.
func (o *RenderSurfaceOwner) AttachRegion(region domain.RegionID) {
	if o.region != "" && o.region != region {
		o.dispose()
	}
	o.region = region
}

// DetachRegion disposes the live surface and marks the region unavailable.
func (o *RenderSurfaceOwner) DetachRegion() {
	o.dispose()
	o.region = ""
}

func (o *RenderSurfaceOwner) Region() domain.RegionID {
	return o.region
}

// Rebuild disposes the current surface and synchronously creates a new one from cfg.
// With no region attached it only disposes and returns a nil handle.
func (o *RenderSurfaceOwner) Rebuild(cfg domain.SurfaceConfig) (ports.SurfaceHandle, error) {
	o.dispose()
	if o.region == "" {
		return nil, nil
	}

	handle, err := o.engine.CreateSurface(o.region, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create surface for region %s: %w", o.region, err)
	}
	o.current = handle
	o.stats.Created++
	o.recorder.RecordSurfaceCreated(string(o.region))
	o.logger.Debug("Surface created", slog.String("surface_id", handle.ID()), slog.String("region", string(o.region)))
	return handle, nil
}

// Current returns the live handle, or nil.
func (o *RenderSurfaceOwner) Current() ports.SurfaceHandle {
	return o.current
}

// Teardown disposes the live surface if there is one. Safe to call repeatedly.
func (o *RenderSurfaceOwner) Teardown() {
	o.dispose()
}

func (o *RenderSurfaceOwner) Stats() domain.SurfaceStats {
	return o.stats
}

func (o *RenderSurfaceOwner) dispose() {
	if o.current == nil {
		return
	}
	handle := o.current
	o.current = nil
	handle.Dispose()
	o.stats.Disposed++
	o.recorder.RecordSurfaceDisposed(string(handle.Region()))
	o.logger.Debug("Surface disposed", slog.String("surface_id", handle.ID()))
}
