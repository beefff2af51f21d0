package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/restocked/stocklog/internal/service/reporting"
)

// DashboardHandler serves the aggregated spend figures for the home screen.
type DashboardHandler struct {
	svc    *reporting.Service
	logger *zap.Logger
}

// NewDashboardHandler constructs the HTTP handler adapter.
func NewDashboardHandler(svc *reporting.Service, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{svc: svc, logger: logger}
}

// Summary returns spend totals and the daily trend.
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.svc.BuildDashboard(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to build dashboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
