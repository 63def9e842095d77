package utils

import (
	"github.com/SscSPs/crypto_pulse/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	fiatPrecision   = 2
	cryptoPrecision = 8
)

// cryptoQuoteCurrencies are vs-currencies quoted with satoshi-level precision.
var cryptoQuoteCurrencies = map[domain.CurrencyCode]bool{
	"btc": true, "eth": true, "ltc": true, "bch": true, "bnb": true,
	"eos": true, "xrp": true, "xlm": true, "link": true, "dot": true,
	"yfi": true, "sol": true, "bits": true, "sats": true,
}

// PricePrecision returns the number of decimals a price quoted in code is shown with.
// Example: usd returns 2, btc returns 8
func PricePrecision(code domain.CurrencyCode) int {
	if cryptoQuoteCurrencies[code] {
		return cryptoPrecision
	}
	return fiatPrecision
}

// RoundPrice converts a provider price to a decimal rounded for the quote currency
// Example: 36512.2549 in USD returns 36512.25
func RoundPrice(value float64, code domain.CurrencyCode) decimal.Decimal {
	return decimal.NewFromFloat(value).Round(int32(PricePrecision(code)))
}

// FormatWithPrecision formats an amount with the given precision
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}
