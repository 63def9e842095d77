package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/SscSPs/crypto_pulse/internal/apperrors"
)

// CurrencyCode is a lowercase pricing currency identifier (e.g., "usd").
type CurrencyCode string

// DefaultCurrencyCodes is the built-in list that stands until a bootstrap fetch succeeds.
var DefaultCurrencyCodes = []CurrencyCode{"usd", "eur", "egp", "gbp"}

// NormalizeCurrencyCode trims and lowercases raw user or upstream input.
func NormalizeCurrencyCode(raw string) CurrencyCode {
	return CurrencyCode(strings.ToLower(strings.TrimSpace(raw)))
}

func (c CurrencyCode) String() string { return string(c) }

// Label is the upper-cased form shown in selectors and titles.
func (c CurrencyCode) Label() string { return strings.ToUpper(string(c)) }

// SupportedCurrencies is the ordered set of codes the dashboard accepts.
// A value built by NewSupportedCurrencies is never empty.
type SupportedCurrencies struct {
	codes []CurrencyCode
}

// NewSupportedCurrencies normalizes and de-duplicates codes, keeping first-seen order.
func NewSupportedCurrencies(codes []CurrencyCode) (SupportedCurrencies, error) {
	seen := make(map[CurrencyCode]struct{}, len(codes))
	out := make([]CurrencyCode, 0, len(codes))
	for _, code := range codes {
		code = NormalizeCurrencyCode(string(code))
		if code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	if len(out) == 0 {
		return SupportedCurrencies{}, fmt.Errorf("%w: supported currency list is empty", apperrors.ErrValidation)
	}
	return SupportedCurrencies{codes: out}, nil
}

// DefaultSupportedCurrencies returns the built-in usd/eur/egp/gbp set.
func DefaultSupportedCurrencies() SupportedCurrencies {
	return SupportedCurrencies{codes: slices.Clone(DefaultCurrencyCodes)}
}

func (s SupportedCurrencies) Contains(code CurrencyCode) bool {
	return slices.Contains(s.codes, code)
}

// First returns the first code, or "" for the zero value.
func (s SupportedCurrencies) First() CurrencyCode {
	if len(s.codes) == 0 {
		return ""
	}
	return s.codes[0]
}

func (s SupportedCurrencies) Codes() []CurrencyCode {
	return slices.Clone(s.codes)
}

func (s SupportedCurrencies) Len() int {
	return len(s.codes)
}
