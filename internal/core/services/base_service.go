package services

import (
	"context"
	"log/slog"
)

// Executor runs closures on the controller's event loop.
// Post is fire-and-forget; Call waits for completion and must not be used from a loop task.
type Executor interface {
	Post(fn func()) error
	Call(ctx context.Context, fn func()) error
}

// DashboardRecorder receives lifecycle and fetch events for metrics.
type DashboardRecorder interface {
	RecordFetchIssued(currency string)
	RecordFetchSettled(currency, outcome string, seconds float64)
	RecordSurfaceCreated(region string)
	RecordSurfaceDisposed(region string)
	SetLoading(loading bool)
}

// Fetch outcomes reported to DashboardRecorder.
const (
	OutcomeApplied   = "applied"
	OutcomeFailed    = "failed"
	OutcomeDiscarded = "discarded"
)

type nopRecorder struct{}

func (nopRecorder) RecordFetchIssued(string)                   {}
func (nopRecorder) RecordFetchSettled(string, string, float64) {}
func (nopRecorder) RecordSurfaceCreated(string)                {}
func (nopRecorder) RecordSurfaceDisposed(string)               {}
func (nopRecorder) SetLoading(bool)                            {}

// BaseService provides the component logger shared by the chart services.
type BaseService struct {
	logger *slog.Logger
}

func newBaseService(logger *slog.Logger, component string) BaseService {
	if logger == nil {
		logger = slog.Default()
	}
	return BaseService{logger: logger.With(slog.String("component", component))}
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.logger.Error(msg, args...)
}

// LogWarn logs a recovered failure with consistent formatting
func (s *BaseService) LogWarn(err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.logger.Warn(msg, args...)
}
