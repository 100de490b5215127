package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/novira-app/novira-backend/internal/apperrors"
	portssvc "github.com/novira-app/novira-backend/internal/core/ports/services"
	"github.com/novira-app/novira-backend/internal/dto"
	"github.com/novira-app/novira-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// settlementHandler handles HTTP requests that mark splits paid.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

func newSettlementHandler(ss portssvc.SettlementSvcFacade) *settlementHandler {
	return &settlementHandler{settlementService: ss}
}

// RegisterSettlementRoutes registers the settlement write routes. Mutating
// endpoints carry the rate limiter.
func RegisterSettlementRoutes(rg *gin.RouterGroup, ss portssvc.SettlementSvcFacade, rateLimit gin.HandlerFunc) {
	h := newSettlementHandler(ss)

	splits := rg.Group("/splits")
	splits.POST("/:splitID/settle", rateLimit, h.settleSplit)

	settlements := rg.Group("/settlements")
	settlements.POST("/batch", rateLimit, h.settleBatch)
}

// settleSplit godoc
// @Summary Settle a single split
// @Description Marks one split as paid. Settling an already-paid split is a no-op and still returns success.
// @Tags settlements
// @Produce  json
// @Param   splitID path string true "Split ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid split ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Split not found"
// @Failure 500 {object} map[string]string "Failed to settle split"
// @Security BearerAuth
// @Router /splits/{splitID}/settle [post]
func (h *settlementHandler) settleSplit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	splitID := c.Param("splitID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("split_id", splitID), slog.String("user_id", userID))
	logger.Info("Received request to settle split")

	err := h.settlementService.Settle(c.Request.Context(), splitID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Split not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Split not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error settling split", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to settle split", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to settle split"})
		}
		return
	}

	logger.Info("Split settled successfully")
	c.JSON(http.StatusOK, gin.H{"status": "settled"})
}

// settleBatch godoc
// @Summary Settle a batch of splits
// @Description Settles each listed split independently and reports which succeeded and which failed. There is no rollback; retry only the failed subset.
// @Tags settlements
// @Accept  json
// @Produce  json
// @Param   batch body dto.SettleBatchRequest true "Split IDs to settle"
// @Success 200 {object} dto.SettleBatchResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to settle batch"
// @Security BearerAuth
// @Router /settlements/batch [post]
func (h *settlementHandler) settleBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.SettleBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SettleBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.Int("batch_size", len(req.SplitIDs)))
	logger.Info("Received request to settle batch")

	result, err := h.settlementService.SettleBatch(c.Request.Context(), req.SplitIDs)
	if err != nil {
		logger.Error("Failed to settle batch", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to settle batch"})
		return
	}

	logger.Info("Batch settlement finished",
		slog.Int("succeeded", len(result.Succeeded)),
		slog.Int("failed", len(result.Failed)))
	c.JSON(http.StatusOK, dto.ToSettleBatchResponse(result))
}
