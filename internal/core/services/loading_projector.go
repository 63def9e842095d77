package services

import "github.com/SscSPs/crypto_pulse/internal/core/domain"

// LoadingProjector is the single "is loading" flag, gated by generation:
// only the generation that raised it can lower it.
type LoadingProjector struct {
	active    domain.FetchGeneration
	loading   bool
	recorder  DashboardRecorder
	listeners []func(bool)
}

func NewLoadingProjector(recorder DashboardRecorder) *LoadingProjector {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &LoadingProjector{recorder: recorder}
}

// OnChange registers fn to be called whenever the flag flips.
func (p *LoadingProjector) OnChange(fn func(loading bool)) {
	p.listeners = append(p.listeners, fn)
}

// Start marks generation g as the one in flight.
func (p *LoadingProjector) Start(g domain.FetchGeneration) {
	p.active = g
	p.set(true)
}

// Finish clears the flag if g is the generation in flight and reports whether it did.
func (p *LoadingProjector) Finish(g domain.FetchGeneration) bool {
	if g != p.active || !p.loading {
		return false
	}
	p.set(false)
	return true
}

// Reset clears the flag regardless of generation; used when no retrieval is live.
func (p *LoadingProjector) Reset() {
	p.set(false)
}

func (p *LoadingProjector) Loading() bool {
	return p.loading
}

func (p *LoadingProjector) set(loading bool) {
	if p.loading == loading {
		return
	}
	p.loading = loading
	p.recorder.SetLoading(loading)
	for _, fn := range p.listeners {
		fn(loading)
	}
}
