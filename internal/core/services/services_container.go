package services

import (
	portssvc "github.com/SscSPs/crypto_pulse/internal/core/ports/services"
)

// NewServiceContainer exposes the chart controller and geo panel to the handlers.
func NewServiceContainer(chart *ChartController, geo *GeoPanel) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Chart: chart,
		Map:   geo,
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ChartSvcFacade = (*ChartController)(nil)
	_ portssvc.MapSvc         = (*GeoPanel)(nil)
)
