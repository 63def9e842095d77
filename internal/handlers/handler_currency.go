package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/crypto_pulse/internal/core/domain"
	portssvc "github.com/SscSPs/crypto_pulse/internal/core/ports/services"
	"github.com/SscSPs/crypto_pulse/internal/dto"
	"github.com/SscSPs/crypto_pulse/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests related to the currency selector.
type currencyHandler struct {
	chartService portssvc.ChartSvcFacade
}

func newCurrencyHandler(cs portssvc.ChartSvcFacade) *currencyHandler {
	return &currencyHandler{
		chartService: cs,
	}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, chartService portssvc.ChartSvcFacade) {
	h := newCurrencyHandler(chartService)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listCurrencies)
		currencies.PUT("/selected", h.selectCurrency)
	}
}

// listCurrencies godoc
// @Summary List supported currencies
// @Description Returns the selector options and the active selection
// @Tags currencies
// @Produce  json
// @Success 200 {object} dto.CurrenciesResponse
// @Failure 503 {object} map[string]string "Service is shutting down"
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	selected, supported, err := h.chartService.Currencies(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list currencies")
		return
	}

	c.JSON(http.StatusOK, dto.ToCurrenciesResponse(selected, supported))
}

// selectCurrency godoc
// @Summary Select the pricing currency
// @Description Switches the chart to another supported currency
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   selection body dto.SelectCurrencyRequest true "Currency code"
// @Success 200 {object} dto.SelectCurrencyResponse
// @Failure 400 {object} map[string]string "Invalid or unsupported currency"
// @Failure 503 {object} map[string]string "Service is shutting down"
// @Router /currencies/selected [put]
func (h *currencyHandler) selectCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.SelectCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SelectCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	code := domain.NormalizeCurrencyCode(req.CurrencyCode)
	logger = logger.With(slog.String("currency_code", code.String()))

	selected, err := h.chartService.SelectCurrency(c.Request.Context(), code)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to select currency")
		return
	}

	logger.Info("Currency selection applied")
	c.JSON(http.StatusOK, dto.SelectCurrencyResponse{Selected: selected.String()})
}
