package handlers

import (
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/invoice_analytics/internal/core/ports/services"
	"github.com/SscSPs/invoice_analytics/internal/dto"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to currencies and exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := &exchangeRateHandler{exchangeRateService: exchangeRateService}

	rg.GET("/currencies", h.listCurrencies)
	rg.GET("/exchange-rates/:from/:to", h.getExchangeRate)
}

// listCurrencies godoc
// @Summary List supported currencies
// @Description Lists the currency codes the pricing provider supports.
// @Tags currencies
// @Produce  json
// @Success 200 {object} dto.ListCurrenciesResponse
// @Failure 503 {object} handlers.ErrorResponse "Exchange rate API unavailable"
// @Security BearerAuth
// @Router /currencies [get]
func (h *exchangeRateHandler) listCurrencies(c *gin.Context) {
	codes, err := h.exchangeRateService.SupportedCurrencies(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list currencies")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCurrenciesResponse(codes))
}

// getExchangeRate godoc
// @Summary Get an exchange rate
// @Description Resolves the rate for one unit of FROM in TO, from cache or the pricing provider.
// @Tags exchange-rates
// @Produce  json
// @Param   from path string true "Source currency code"
// @Param   to   path string true "Target currency code"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid currency"
// @Failure 503 {object} handlers.ErrorResponse "Exchange rate API unavailable"
// @Failure 504 {object} handlers.ErrorResponse "Exchange rate API timeout"
// @Security BearerAuth
// @Router /exchange-rates/{from}/{to} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	from := strings.ToUpper(strings.TrimSpace(c.Param("from")))
	to := strings.ToUpper(strings.TrimSpace(c.Param("to")))

	rate, err := h.exchangeRateService.GetRate(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err, "Failed to get exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ExchangeRateResponse{FromCurrency: from, ToCurrency: to, Rate: rate})
}
