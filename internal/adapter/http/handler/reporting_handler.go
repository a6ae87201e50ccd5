package handler

import (
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports"
	"github.com/Gurn0or/golden-haven-navigator/pkg/response"

	"github.com/gin-gonic/gin"
)

// ReportingHandler handles the dashboard and reports endpoints.
type ReportingHandler struct {
	reportingSvc ports.ReportingService
}

// NewReportingHandler creates a new ReportingHandler.
func NewReportingHandler(reportingSvc ports.ReportingService) *ReportingHandler {
	return &ReportingHandler{reportingSvc: reportingSvc}
}

// DashboardStats handles GET /api/v1/dashboard/stats.
func (h *ReportingHandler) DashboardStats(c *gin.Context) {
	stats, err := h.reportingSvc.DashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// TokenSupply handles GET /api/v1/reports/token-supply.
func (h *ReportingHandler) TokenSupply(c *gin.Context) {
	supply, err := h.reportingSvc.TokenSupply(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, supply)
}

// RedemptionVolume handles GET /api/v1/reports/redemption-volume?period=P.
func (h *ReportingHandler) RedemptionVolume(c *gin.Context) {
	volume, err := h.reportingSvc.RedemptionVolume(c.Request.Context(), c.Query("period"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, volume)
}
