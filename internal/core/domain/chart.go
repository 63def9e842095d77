package domain

// LoadingText is shown while the live generation is still loading.
const LoadingText = "Loading Pulse Data..."

// ChartSnapshot is a consistent read of the chart controller state, taken on the event loop.
type ChartSnapshot struct {
	Currency   CurrencyCode
	Supported  SupportedCurrencies
	Loading    bool
	Generation FetchGeneration
	SurfaceID  string
	Config     SurfaceConfig
	Series     PriceSeries
	Summary    SeriesSummary
}

// FetchStats counts retrieval outcomes since startup.
type FetchStats struct {
	Issued    uint64 `json:"issued"`
	Applied   uint64 `json:"applied"`
	Failed    uint64 `json:"failed"`
	Discarded uint64 `json:"discarded"`
}

// SurfaceStats counts surface lifecycle events of a surface owner.
type SurfaceStats struct {
	Created  int `json:"created"`
	Disposed int `json:"disposed"`
}
