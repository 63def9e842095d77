package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SscSPs/crypto_pulse/internal/core/domain"
	portssvc "github.com/SscSPs/crypto_pulse/internal/core/ports/services"
	"github.com/SscSPs/crypto_pulse/internal/dto"
	"github.com/SscSPs/crypto_pulse/internal/middleware"
	"github.com/gin-gonic/gin"
)

type mapHandler struct {
	mapService portssvc.MapSvc
}

func registerMapRoutes(rg *gin.RouterGroup, mapService portssvc.MapSvc) {
	h := &mapHandler{mapService: mapService}

	geo := rg.Group("/map")
	{
		geo.GET("", h.getMap)
		geo.GET("/export", h.exportMap)
	}
}

func (h *mapHandler) getMap(c *gin.Context) {
	cfg, mounted := h.mapService.Config()
	c.JSON(http.StatusOK, dto.ToMapResponse(cfg, mounted))
}

func (h *mapHandler) exportMap(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	cfg, mounted := h.mapService.Config()
	if !mounted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Map is not mounted"})
		return
	}

	body, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		logger.Error("Failed to encode map export")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export map"})
		return
	}

	prefix := cfg.ExportPrefix
	if prefix == "" {
		prefix = domain.MapExportPrefix
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.json"`, prefix))
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
