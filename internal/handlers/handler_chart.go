package handlers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/crypto_pulse/internal/core/domain"
	portssvc "github.com/SscSPs/crypto_pulse/internal/core/ports/services"
	"github.com/SscSPs/crypto_pulse/internal/dto"
	"github.com/SscSPs/crypto_pulse/internal/middleware"
	"github.com/SscSPs/crypto_pulse/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type chartHandler struct {
	chartService portssvc.ChartSvcFacade
}

func registerChartRoutes(rg *gin.RouterGroup, chartService portssvc.ChartSvcFacade, stream *streamHandler) {
	h := &chartHandler{chartService: chartService}

	chart := rg.Group("/chart")
	{
		chart.GET("", h.getChart)
		chart.GET("/stats", h.getStats)
		chart.GET("/export", h.exportChart)
		chart.GET("/stream", stream.serve)
	}
}

// getChart godoc
// @Summary Current price chart
// @Tags chart
// @Produce  json
// @Success 200 {object} dto.ChartResponse
// @Router /chart [get]
func (h *chartHandler) getChart(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	snap, err := h.chartService.Snapshot(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to read chart")
		return
	}
	c.JSON(http.StatusOK, dto.ToChartResponse(snap))
}

func (h *chartHandler) getStats(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	fetches, err := h.chartService.FetchStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to read chart stats")
		return
	}
	surfaces, err := h.chartService.SurfaceStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to read chart stats")
		return
	}
	c.JSON(http.StatusOK, dto.ChartStatsResponse{Fetches: fetches, Surfaces: surfaces})
}

// exportChart godoc
// @Summary Download the displayed series
// @Tags chart
// @Produce  text/csv
// @Param   format query string false "csv (default) or json"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Unsupported export format"
// @Router /chart/export [get]
func (h *chartHandler) exportChart(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	if format != "csv" && format != "json" {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unsupported export format '%s'", format)})
		return
	}

	snap, err := h.chartService.Snapshot(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to export chart")
		return
	}

	prefix := snap.Config.ExportPrefix
	if prefix == "" {
		prefix = domain.ChartExportPrefix
	}

	var (
		body        []byte
		contentType string
	)
	switch format {
	case "csv":
		body, err = seriesCSV(snap.Series, snap.Currency)
		contentType = "text/csv; charset=utf-8"
	case "json":
		body, err = seriesJSON(snap)
		contentType = "application/json; charset=utf-8"
	}
	if err != nil {
		logger.Error("Failed to encode export", slog.String("format", format), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export chart"})
		return
	}

	logger.Info("Chart exported", slog.String("format", format), slog.Int("points", len(snap.Series)))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, prefix, format))
	c.Data(http.StatusOK, contentType, body)
}

type exportPoint struct {
	Timestamp int64           `json:"timestamp"`
	Date      string          `json:"date"`
	Value     decimal.Decimal `json:"value"`
}

type exportDocument struct {
	Currency string        `json:"currency"`
	Title    string        `json:"title"`
	Points   []exportPoint `json:"points"`
}

func toExportPoints(series domain.PriceSeries, currency domain.CurrencyCode) []exportPoint {
	out := make([]exportPoint, len(series))
	for i, p := range series {
		out[i] = exportPoint{
			Timestamp: p.Timestamp,
			Date:      time.UnixMilli(p.Timestamp).UTC().Format(time.RFC3339),
			Value:     utils.RoundPrice(p.Value, currency),
		}
	}
	return out
}

func seriesCSV(series domain.PriceSeries, currency domain.CurrencyCode) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"timestamp", "date", "value"}); err != nil {
		return nil, err
	}
	precision := utils.PricePrecision(currency)
	for _, p := range toExportPoints(series, currency) {
		if err := w.Write([]string{strconv.FormatInt(p.Timestamp, 10), p.Date, utils.FormatWithPrecision(p.Value, precision)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func seriesJSON(snap domain.ChartSnapshot) ([]byte, error) {
	return json.MarshalIndent(exportDocument{
		Currency: snap.Currency.String(),
		Title:    snap.Config.Title,
		Points:   toExportPoints(snap.Series, snap.Currency),
	}, "", "  ")
}
