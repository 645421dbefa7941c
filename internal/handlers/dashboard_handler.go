package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/eduportal-service/internal/services"
	"github.com/SAP-F-2025/eduportal-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      NewBaseHandler(logger),
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	h.LogRequest(c, "Getting dashboard stats")

	stats, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusOK, stats)
}

func (h *DashboardHandler) GetAnalytics(c *gin.Context) {
	h.LogRequest(c, "Getting dashboard analytics")

	analytics, err := h.dashboardService.GetAnalytics(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusOK, analytics)
}
