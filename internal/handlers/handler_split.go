package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/novira-app/novira-backend/internal/core/ports/services"
	"github.com/novira-app/novira-backend/internal/dto"
	"github.com/novira-app/novira-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// splitHandler handles HTTP requests for pending splits.
type splitHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

func newSplitHandler(bs portssvc.BalanceSvcFacade) *splitHandler {
	return &splitHandler{balanceService: bs}
}

// registerSplitRoutes registers read routes for splits.
func registerSplitRoutes(rg *gin.RouterGroup, bs portssvc.BalanceSvcFacade) {
	h := newSplitHandler(bs)

	splits := rg.Group("/splits")
	{
		splits.GET("/pending", h.listPendingSplits)
	}
}

// listPendingSplits godoc
// @Summary List the caller's pending splits
// @Description Retrieves the caller's unsettled splits (owed and owing), newest first
// @Tags splits
// @Produce  json
// @Success 200 {array} dto.SplitResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list pending splits"
// @Security BearerAuth
// @Router /splits/pending [get]
func (h *splitHandler) listPendingSplits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	viewerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Viewer user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	splits, err := h.balanceService.ListPendingSplits(c.Request.Context(), viewerID)
	if err != nil {
		logger.Error("Failed to list pending splits", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pending splits"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListSplitResponse(splits))
}
