package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/splitmate/splitmate_backend/internal/core/ports/services"
	"github.com/splitmate/splitmate_backend/internal/dto"
	"github.com/splitmate/splitmate_backend/internal/middleware"
)

// balanceHandler handles HTTP requests for derived balances and analytics.
type balanceHandler struct {
	balanceService portssvc.BalanceService
}

func newBalanceHandler(bs portssvc.BalanceService) *balanceHandler {
	return &balanceHandler{balanceService: bs}
}

// registerBalanceRoutes registers balance and analytics routes under groups.
func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceService) {
	h := newBalanceHandler(balanceService)

	rg.GET("/groups/:id/balances", h.getGroupBalances)
	rg.GET("/groups/:id/analytics", h.getGroupAnalytics)
}

// getGroupBalances godoc
// @Summary Get a group's balances
// @Description Computes each member's paid, owed and net amounts, ordered by net balance descending. The caller must be a member.
// @Tags balances
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} dto.ListBalancesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id}/balances [get]
func (h *balanceHandler) getGroupBalances(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	balances, err := h.balanceService.GetGroupBalances(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to compute balances")
		return
	}

	c.JSON(http.StatusOK, dto.ToListBalancesResponse(balances))
}

// getGroupAnalytics godoc
// @Summary Get a group's spending analytics
// @Description Summarizes the group's spending for the requested period: total, count, per-category and per-day breakdowns.
// @Tags balances
// @Produce json
// @Param id path string true "Group ID"
// @Param period query string false "Aggregation period" Enums(week, month, year) default(month)
// @Success 200 {object} dto.GroupAnalyticsResponse
// @Failure 400 {object} ErrorResponse "Unknown period"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id}/analytics [get]
func (h *balanceHandler) getGroupAnalytics(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.AnalyticsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for analytics", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	analytics, err := h.balanceService.GetGroupAnalytics(c.Request.Context(), c.Param("id"), params.Period, userID)
	if err != nil {
		respondError(c, err, "Failed to compute analytics")
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupAnalyticsResponse(analytics))
}
