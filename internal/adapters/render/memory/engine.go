// Package memory is a headless rendering engine: surfaces keep their series in memory
// and push replacements to subscribers, which the HTTP layer streams to browsers.
package memory

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/crypto_pulse/internal/apperrors"
	"github.com/SscSPs/crypto_pulse/internal/core/domain"
	"github.com/SscSPs/crypto_pulse/internal/core/ports"
)

var _ ports.RenderEngine = (*Engine)(nil)

// Engine is one rendering root. Each region can hold a single live surface.
type Engine struct {
	name   string
	redraw time.Duration
	log    *slog.Logger

	mu   sync.Mutex
	live map[domain.RegionID]*Surface
}

// NewEngine creates an engine. With a positive redraw interval, each surface runs a
// redraw timer that coalesces replacements before publishing them; with zero,
// replacements are published immediately.
func NewEngine(name string, redraw time.Duration, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		name:   name,
		redraw: redraw,
		log:    log.With(slog.String("engine", name)),
		live:   make(map[domain.RegionID]*Surface),
	}
}

func (e *Engine) CreateSurface(region domain.RegionID, cfg domain.SurfaceConfig) (ports.SurfaceHandle, error) {
	if region == "" {
		return nil, fmt.Errorf("%w: empty region", apperrors.ErrValidation)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if existing, ok := e.live[region]; ok {
		return nil, fmt.Errorf("%w: region %s held by surface %s", apperrors.ErrRegionBound, region, existing.ID())
	}

	s := newSurface(e, region, cfg, e.redraw)
	e.live[region] = s
	e.log.Debug("Surface bound", slog.String("region", string(region)), slog.String("surface_id", s.ID()))
	return s, nil
}

// LiveSurfaces returns the number of regions currently bound.
func (e *Engine) LiveSurfaces() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.live)
}

// Surface returns the live surface bound to region, if any.
func (e *Engine) Surface(region domain.RegionID) (*Surface, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.live[region]
	return s, ok
}

func (e *Engine) release(s *Surface) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.live[s.region] == s {
		delete(e.live, s.region)
	}
}
