package dto

import "github.com/SscSPs/crypto_pulse/internal/core/domain"

// MapResponse defines the data returned for the geographic panel.
type MapResponse struct {
	Mounted bool                  `json:"mounted"`
	Config  *domain.SurfaceConfig `json:"config,omitempty"`
}

func ToMapResponse(cfg domain.SurfaceConfig, mounted bool) MapResponse {
	if !mounted {
		return MapResponse{}
	}
	return MapResponse{Mounted: true, Config: &cfg}
}
