package domain

// LookbackDays is the fixed history window requested per price retrieval.
const LookbackDays = 7

// FetchGeneration identifies one synchronization epoch of the price chart.
// Results tagged with anything other than the live generation are discarded.
type FetchGeneration uint64

// RawPrice is one [timestampMillis, price] pair as delivered by the market data provider.
type RawPrice struct {
	TimestampMillis int64
	Price           float64
}

// PricePoint is a single sample on the chart.
type PricePoint struct {
	Timestamp int64   `json:"timestamp"` // epoch milliseconds
	Value     float64 `json:"value"`
}

// PriceSeries is ordered ascending by timestamp and is only ever replaced as a whole.
type PriceSeries []PricePoint

// SeriesFromRaw maps provider pairs one-to-one onto points, preserving arrival order.
// The result is never nil so an empty series still serializes as [].
func SeriesFromRaw(raw []RawPrice) PriceSeries {
	series := make(PriceSeries, 0, len(raw))
	for _, r := range raw {
		series = append(series, PricePoint{Timestamp: r.TimestampMillis, Value: r.Price})
	}
	return series
}

// Clone returns a copy that shares no backing array with s.
func (s PriceSeries) Clone() PriceSeries {
	out := make(PriceSeries, len(s))
	copy(out, s)
	return out
}

// IsAscending reports whether timestamps never decrease.
func (s PriceSeries) IsAscending() bool {
	for i := 1; i < len(s); i++ {
		if s[i].Timestamp < s[i-1].Timestamp {
			return false
		}
	}
	return true
}
