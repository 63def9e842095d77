package memory

import (
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/crypto_pulse/internal/apperrors"
	"github.com/SscSPs/crypto_pulse/internal/core/domain"
	"github.com/SscSPs/crypto_pulse/internal/core/ports"
	"github.com/google/uuid"
)

var _ ports.SurfaceHandle = (*Surface)(nil)

// Surface is a live in-memory drawing context.
type Surface struct {
	id     string
	region domain.RegionID
	cfg    domain.SurfaceConfig
	engine *Engine

	mu       sync.Mutex
	series   domain.PriceSeries
	dirty    bool
	frames   uint64
	subs     []chan domain.PriceSeries
	disposed bool

	stopRedraw chan struct{}
	redrawDone chan struct{}
}

func newSurface(e *Engine, region domain.RegionID, cfg domain.SurfaceConfig, redraw time.Duration) *Surface {
	s := &Surface{
		id:     uuid.NewString(),
		region: region,
		cfg:    cfg,
		engine: e,
		series: domain.PriceSeries{},
	}
	if redraw > 0 {
		s.stopRedraw = make(chan struct{})
		s.redrawDone = make(chan struct{})
		go s.redrawLoop(redraw)
	}
	return s
}

func (s *Surface) ID() string                   { return s.id }
func (s *Surface) Region() domain.RegionID      { return s.region }
func (s *Surface) Config() domain.SurfaceConfig { return s.cfg }

func (s *Surface) ReplaceSeries(series domain.PriceSeries) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return apperrors.ErrSurfaceDisposed
	}
	s.series = series.Clone()
	if s.stopRedraw == nil {
		s.publishLocked()
		return nil
	}
	s.dirty = true
	return nil
}

func (s *Surface) Series() domain.PriceSeries {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.series.Clone()
}

// Subscribe returns a channel holding at most the latest unread series.
func (s *Surface) Subscribe() (<-chan domain.PriceSeries, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return nil, apperrors.ErrSurfaceDisposed
	}
	ch := make(chan domain.PriceSeries, 1)
	s.subs = append(s.subs, ch)
	return ch, nil
}

// Frames counts redraws that published a change.
func (s *Surface) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Subscribers returns the number of open subscriptions.
func (s *Surface) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Dispose stops the redraw timer, closes every subscription and frees the region.
func (s *Surface) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	for _, ch := range s.subs {
		close(ch)
	}
	s.subs = nil
	s.mu.Unlock()

	if s.stopRedraw != nil {
		close(s.stopRedraw)
		<-s.redrawDone
	}
	s.engine.release(s)
	s.engine.log.Debug("Surface disposed", slog.String("surface_id", s.id))
}

func (s *Surface) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

func (s *Surface) redrawLoop(interval time.Duration) {
	defer close(s.redrawDone)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopRedraw:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.dirty && !s.disposed {
				s.publishLocked()
			}
			s.mu.Unlock()
		}
	}
}

// publishLocked hands the current series to every subscriber, replacing any unread one.
func (s *Surface) publishLocked() {
	s.dirty = false
	s.frames++
	for _, ch := range s.subs {
		snapshot := s.series.Clone()
		select {
		case ch <- snapshot:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
}
