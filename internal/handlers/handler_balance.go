package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/novira-app/novira-backend/internal/core/ports/services"
	"github.com/novira-app/novira-backend/internal/dto"
	"github.com/novira-app/novira-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// balanceHandler handles HTTP requests for balances and settlement plans.
type balanceHandler struct {
	balanceService    portssvc.BalanceSvcFacade
	simplifyService   portssvc.SimplifySvcFacade
	reportingCurrency string
}

func newBalanceHandler(bs portssvc.BalanceSvcFacade, ss portssvc.SimplifySvcFacade, reportingCurrency string) *balanceHandler {
	return &balanceHandler{
		balanceService:    bs,
		simplifyService:   ss,
		reportingCurrency: reportingCurrency,
	}
}

// RegisterBalanceRoutes registers routes related to balances.
func RegisterBalanceRoutes(rg *gin.RouterGroup, bs portssvc.BalanceSvcFacade, ss portssvc.SimplifySvcFacade, reportingCurrency string) {
	h := newBalanceHandler(bs, ss, reportingCurrency)

	balances := rg.Group("/balances")
	{
		balances.GET("", h.getBalances)
		balances.GET("/simplified", h.getSimplifiedPayments)
	}
}

// currencyParam resolves the requested reporting currency, defaulting to the
// configured one.
func (h *balanceHandler) currencyParam(c *gin.Context) string {
	currency := strings.ToUpper(c.Query("currency"))
	if currency == "" {
		return h.reportingCurrency
	}
	return currency
}

// getBalances godoc
// @Summary Get the caller's balance summary
// @Description Aggregates the caller's unsettled splits into totals and per-person net balances, in the reporting currency
// @Tags balances
// @Produce  json
// @Param   currency query string false "Reporting currency code (3 letters, defaults to server configuration)"
// @Success 200 {object} dto.BalanceSummaryResponse
// @Failure 400 {object} map[string]string "Invalid currency"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute balances"
// @Security BearerAuth
// @Router /balances [get]
func (h *balanceHandler) getBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	viewerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Viewer user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	currency := h.currencyParam(c)
	if len(currency) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency code must be 3 letters"})
		return
	}

	summary, err := h.balanceService.ComputeBalances(c.Request.Context(), viewerID, currency)
	if err != nil {
		logger.Error("Failed to compute balances", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balances"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSummaryResponse(summary))
}

// getSimplifiedPayments godoc
// @Summary Get the caller's simplified settlement plan
// @Description Computes the minimal set of transfers that settles the caller's debt graph. Returns an empty list when simplification is not worthwhile.
// @Tags balances
// @Produce  json
// @Param   currency query string false "Reporting currency code (3 letters, defaults to server configuration)"
// @Success 200 {array} dto.SimplifiedPaymentResponse
// @Failure 400 {object} map[string]string "Invalid currency"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute settlement plan"
// @Security BearerAuth
// @Router /balances/simplified [get]
func (h *balanceHandler) getSimplifiedPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	viewerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Viewer user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	currency := h.currencyParam(c)
	if len(currency) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency code must be 3 letters"})
		return
	}

	payments, err := h.simplifyService.SimplifiedPayments(c.Request.Context(), viewerID, currency)
	if err != nil {
		logger.Error("Failed to compute settlement plan", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute settlement plan"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListSimplifiedPaymentResponse(payments))
}
