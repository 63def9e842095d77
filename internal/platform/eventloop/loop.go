// Package eventloop runs closures one at a time on a single goroutine.
// State that is only touched from loop tasks needs no locking.
package eventloop

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/SscSPs/crypto_pulse/internal/apperrors"
)

// Loop is a single-goroutine task executor.
type Loop struct {
	tasks chan func()
	quit  chan struct{}
	done  chan struct{}
	log   *slog.Logger

	mu      sync.Mutex
	started bool
	closed  bool
}

// New creates a loop whose queue holds up to buffer pending tasks.
func New(buffer int, log *slog.Logger) *Loop {
	if log == nil {
		log = slog.Default()
	}
	if buffer < 1 {
		buffer = 1
	}
	return &Loop{
		tasks: make(chan func(), buffer),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
		log:   log.With(slog.String("component", "eventloop")),
	}
}

// Start launches the loop goroutine. It runs until Stop is called or ctx is done.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return apperrors.ErrLoopStopped
	}
	if l.started {
		return nil
	}
	l.started = true
	go l.run(ctx)
	return nil
}

// Stop asks the loop to exit and waits for the running task, if any, to finish.
// Queued tasks that have not started are dropped.
func (l *Loop) Stop(ctx context.Context) error {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		close(l.quit)
		if !l.started {
			close(l.done)
		}
	}
	l.mu.Unlock()

	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Post enqueues fn without waiting for it to run.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.quit:
		return apperrors.ErrLoopStopped
	case <-l.done:
		return apperrors.ErrLoopStopped
	default:
	}

	select {
	case l.tasks <- fn:
		return nil
	case <-l.quit:
		return apperrors.ErrLoopStopped
	case <-l.done:
		return apperrors.ErrLoopStopped
	}
}

const (
	callPending int32 = iota
	callRunning
	callAbandoned
)

// Call runs fn on the loop and waits for it to return.
// If ctx is done before fn starts, fn never runs and ctx.Err() is returned. Once fn
// has started, Call waits for it regardless of ctx, so a nil error means fn ran and a
// non-nil error means it did not.
// It must not be called from a loop task; that would deadlock.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	var state atomic.Int32
	finished := make(chan struct{})
	if err := l.Post(func() {
		defer close(finished)
		if ctx.Err() != nil || !state.CompareAndSwap(callPending, callRunning) {
			return
		}
		fn()
	}); err != nil {
		return err
	}

	select {
	case <-finished:
	case <-ctx.Done():
		if state.CompareAndSwap(callPending, callAbandoned) {
			return ctx.Err()
		}
		<-finished
	case <-l.done:
		if state.CompareAndSwap(callPending, callAbandoned) {
			return apperrors.ErrLoopStopped
		}
		<-finished
	}

	if state.Load() != callRunning {
		// skipped at execution time because ctx had already expired
		return ctx.Err()
	}
	return nil
}

// Done is closed once the loop goroutine has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) run(ctx context.Context) {
	defer close(l.done)
	l.log.Debug("event loop started")
	for {
		select {
		case <-ctx.Done():
			l.log.Debug("event loop context finished", slog.String("error", ctx.Err().Error()))
			return
		case <-l.quit:
			l.log.Debug("event loop stopped")
			return
		case fn := <-l.tasks:
			l.exec(fn)
		}
	}
}

func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error("event loop task panicked", slog.Any("panic", r))
		}
	}()
	fn()
}
