package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kairo_backend/internal/services"
	"kairo_backend/internal/services/dto"
)

type AnalyticsHandler struct {
	*BaseHandler
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(base *BaseHandler, analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{BaseHandler: base, analyticsService: analyticsService}
}

// RegisterRoutes expects rg to be behind the session gate plus the
// recruiter role check.
func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	analytics := rg.Group("/recruiter/analytics")
	{
		analytics.GET("/monthly", h.Monthly)
		analytics.GET("/funnel", h.Funnel)
	}
}

func (h *AnalyticsHandler) Monthly(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.MonthlyAnalyticsQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	stats, err := h.analyticsService.MonthlyStats(h.GetDB(c), userID, query.Months)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AnalyticsHandler) Funnel(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	funnel, err := h.analyticsService.Funnel(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, funnel)
}
