package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/crypto_pulse/internal/apperrors"
	"github.com/SscSPs/crypto_pulse/internal/core/domain"
	"github.com/SscSPs/crypto_pulse/internal/core/ports"
)

// CurrencySelection holds the active currency and the set of accepted currencies.
// Everything except LoadSupported must run on the event loop.
type CurrencySelection struct {
	BaseService
	lister    ports.CurrencyLister
	exec      Executor
	selected  domain.CurrencyCode
	supported domain.SupportedCurrencies
	observer  func(domain.CurrencyCode)
}

// NewCurrencySelection starts with the built-in currency list and the given selection.
func NewCurrencySelection(lister ports.CurrencyLister, exec Executor, initial domain.CurrencyCode, logger *slog.Logger) *CurrencySelection {
	return &CurrencySelection{
		BaseService: newBaseService(logger, "currency_selection"),
		lister:      lister,
		exec:        exec,
		selected:    initial,
		supported:   domain.DefaultSupportedCurrencies(),
	}
}

// Observe registers the single observer notified after each accepted change.
func (s *CurrencySelection) Observe(fn func(domain.CurrencyCode)) {
	s.observer = fn
}

func (s *CurrencySelection) Selected() domain.CurrencyCode {
	return s.selected
}

func (s *CurrencySelection) Supported() domain.SupportedCurrencies {
	return s.supported
}

// SetSelected switches the active currency. Unsupported codes and the code already
// selected are ignored. It reports whether the selection changed.
func (s *CurrencySelection) SetSelected(code domain.CurrencyCode) bool {
	if !s.supported.Contains(code) {
		s.logger.Debug("Ignoring unsupported currency", slog.String("currency", code.String()))
		return false
	}
	if code == s.selected {
		return false
	}
	s.logger.Info("Currency selected", slog.String("from", s.selected.String()), slog.String("to", code.String()))
	s.selected = code
	s.notify()
	return true
}

// LoadSupported fetches the provider currency list and applies it on the loop.
// Any failure leaves both the list and the selection untouched and returns an
// error wrapping apperrors.ErrBootstrapFetch.
func (s *CurrencySelection) LoadSupported(ctx context.Context) error {
	codes, err := s.lister.SupportedCurrencies(ctx)
	if err != nil {
		err = fmt.Errorf("%w: %v", apperrors.ErrBootstrapFetch, err)
		s.LogWarn(err, "Keeping default currency list")
		return err
	}

	supported, err := domain.NewSupportedCurrencies(codes)
	if err != nil {
		err = fmt.Errorf("%w: %v", apperrors.ErrBootstrapFetch, err)
		s.LogWarn(err, "Keeping default currency list")
		return err
	}

	if err := s.exec.Call(ctx, func() { s.replaceSupported(supported) }); err != nil {
		return fmt.Errorf("failed to apply supported currencies: %w", err)
	}
	return nil
}

func (s *CurrencySelection) replaceSupported(supported domain.SupportedCurrencies) {
	s.supported = supported
	s.logger.Info("Supported currencies loaded", slog.Int("count", supported.Len()))

	if supported.Contains(s.selected) {
		return
	}
	repaired := supported.First()
	s.logger.Info("Selected currency no longer supported, resetting",
		slog.String("from", s.selected.String()),
		slog.String("to", repaired.String()),
	)
	s.selected = repaired
	s.notify()
}

func (s *CurrencySelection) notify() {
	if s.observer != nil {
		s.observer(s.selected)
	}
}
