package utils_test

import (
	"testing"

	"github.com/SscSPs/crypto_pulse/internal/core/domain"
	"github.com/SscSPs/crypto_pulse/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundPrice(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		code     string
		expected string
	}{
		{name: "fiat rounds to cents", value: 36512.2549, code: "usd", expected: "36512.25"},
		{name: "fiat keeps short values", value: 1.5, code: "eur", expected: "1.5"},
		{name: "crypto keeps satoshis", value: 0.123456789, code: "btc", expected: "0.12345679"},
		{name: "unknown code is fiat", value: 2.005, code: "xyz", expected: "2.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := utils.RoundPrice(tt.value, domain.CurrencyCode(tt.code))
			assert.Equal(t, tt.expected, got.String())
		})
	}
}

func TestFormatWithPrecision(t *testing.T) {
	assert.Equal(t, "12.35", utils.FormatWithPrecision(decimal.RequireFromString("12.3456"), 2))
	assert.Equal(t, "12", utils.FormatWithPrecision(decimal.RequireFromString("12.3456"), 0))
}
