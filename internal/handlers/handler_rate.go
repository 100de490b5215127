package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/novira-app/novira-backend/internal/apperrors"
	portssvc "github.com/novira-app/novira-backend/internal/core/ports/services"
	"github.com/novira-app/novira-backend/internal/dto"
	"github.com/novira-app/novira-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// rateHandler handles HTTP requests related to exchange rates.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{rateService: rs}
}

// registerRateRoutes registers routes related to exchange rates. The upsert
// route is rate limited like the other mutating endpoints.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade, rateLimit gin.HandlerFunc) {
	h := newRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.GET("/:baseCurrency", h.getRateTable)
		rates.PUT("", rateLimit, h.upsertRate)
	}
}

// getRateTable godoc
// @Summary Get the rate table for a base currency
// @Description Retrieves all stored live rates quoted against the given base currency
// @Tags rates
// @Produce  json
// @Param   baseCurrency path string true "Base currency code (3 letters)"
// @Success 200 {object} dto.RateTableResponse
// @Failure 400 {object} map[string]string "Invalid currency code"
// @Failure 500 {object} map[string]string "Failed to retrieve rate table"
// @Security BearerAuth
// @Router /rates/{baseCurrency} [get]
func (h *rateHandler) getRateTable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	baseCurrency := strings.ToUpper(c.Param("baseCurrency"))

	table, err := h.rateService.GetRateTable(c.Request.Context(), baseCurrency)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to get rate table", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rate table"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRateTableResponse(table))
}

// upsertRate godoc
// @Summary Create or replace an exchange rate
// @Description Stores a live rate for a currency pair, replacing any previous rate for the same pair
// @Tags rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.UpsertRateRequest true "Rate details"
// @Success 200 {object} dto.RateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to upsert rate"
// @Security BearerAuth
// @Router /rates [put]
func (h *rateHandler) upsertRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpsertRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(
		slog.String("updater_user_id", updaterUserID),
		slog.String("currency_code", req.CurrencyCode),
		slog.String("base_currency", req.BaseCurrency))
	logger.Info("Received request to upsert exchange rate")

	rate, err := h.rateService.UpsertRate(c.Request.Context(), req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error upserting rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to upsert rate in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upsert rate"})
		}
		return
	}

	logger.Info("Exchange rate upserted successfully")
	c.JSON(http.StatusOK, dto.ToRateResponse(rate))
}
