package domain

import "github.com/shopspring/decimal"

// SeriesSummary holds headline figures for the displayed series.
type SeriesSummary struct {
	Points        int             `json:"points"`
	First         decimal.Decimal `json:"first"`
	Last          decimal.Decimal `json:"last"`
	Min           decimal.Decimal `json:"min"`
	Max           decimal.Decimal `json:"max"`
	ChangePercent decimal.Decimal `json:"changePercent"`
}

// Summarize computes the summary of s. An empty series yields all zeros.
func Summarize(s PriceSeries) SeriesSummary {
	if len(s) == 0 {
		return SeriesSummary{}
	}
	first := decimal.NewFromFloat(s[0].Value)
	last := decimal.NewFromFloat(s[len(s)-1].Value)
	lo, hi := first, first
	for _, p := range s[1:] {
		v := decimal.NewFromFloat(p.Value)
		if v.LessThan(lo) {
			lo = v
		}
		if v.GreaterThan(hi) {
			hi = v
		}
	}

	change := decimal.Zero
	if !first.IsZero() {
		change = last.Sub(first).Div(first).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return SeriesSummary{
		Points:        len(s),
		First:         first,
		Last:          last,
		Min:           lo,
		Max:           hi,
		ChangePercent: change,
	}
}
