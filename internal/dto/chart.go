package dto

import (
	"github.com/SscSPs/crypto_pulse/internal/core/domain"
)

// ChartResponse defines the data returned for the price chart.
type ChartResponse struct {
	Currency    string                `json:"currency"`
	Loading     bool                  `json:"loading"`
	LoadingText string                `json:"loadingText,omitempty"`
	Generation  uint64                `json:"generation"`
	SurfaceID   string                `json:"surfaceId,omitempty"`
	Config      *domain.SurfaceConfig `json:"config,omitempty"`
	Series      domain.PriceSeries    `json:"series"`
	Summary     domain.SeriesSummary  `json:"summary"`
}

// ChartStatsResponse reports retrieval and surface counters.
type ChartStatsResponse struct {
	Fetches  domain.FetchStats   `json:"fetches"`
	Surfaces domain.SurfaceStats `json:"surfaces"`
}

// ToChartResponse converts a domain.ChartSnapshot to ChartResponse DTO
func ToChartResponse(snap domain.ChartSnapshot) ChartResponse {
	resp := ChartResponse{
		Currency:   snap.Currency.String(),
		Loading:    snap.Loading,
		Generation: uint64(snap.Generation),
		SurfaceID:  snap.SurfaceID,
		Series:     snap.Series,
		Summary:    snap.Summary,
	}
	if resp.Series == nil {
		resp.Series = domain.PriceSeries{}
	}
	if snap.Loading {
		resp.LoadingText = domain.LoadingText
	}
	if snap.SurfaceID != "" {
		cfg := snap.Config
		resp.Config = &cfg
	}
	return resp
}
