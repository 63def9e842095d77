package dto

import "github.com/SscSPs/crypto_pulse/internal/core/domain"

// SelectCurrencyRequest defines the body of a currency selection.
type SelectCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,currencycode"`
}

// CurrencyOption is one entry of the currency selector.
type CurrencyOption struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// CurrenciesResponse defines the data returned for the currency selector.
type CurrenciesResponse struct {
	Selected string           `json:"selected"`
	Options  []CurrencyOption `json:"options"`
}

// SelectCurrencyResponse reports the selection after a change.
type SelectCurrencyResponse struct {
	Selected string `json:"selected"`
}

// ToCurrenciesResponse converts the selection state into the selector DTO
func ToCurrenciesResponse(selected domain.CurrencyCode, supported domain.SupportedCurrencies) CurrenciesResponse {
	codes := supported.Codes()
	options := make([]CurrencyOption, len(codes))
	for i, code := range codes {
		options[i] = CurrencyOption{Code: code.String(), Label: code.Label()}
	}
	return CurrenciesResponse{
		Selected: selected.String(),
		Options:  options,
	}
}
