package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/twmlab/probenplan-go/internal/schedule"
	"github.com/twmlab/probenplan-go/internal/service"
	"github.com/twmlab/probenplan-go/pkg/response"
)

// DashboardHandler serves the rendered customer tables
type DashboardHandler struct {
	planService *service.PlanService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(planService *service.PlanService) *DashboardHandler {
	return &DashboardHandler{planService: planService}
}

// GetDashboard handles GET /api/v1/plan/dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	table, version, err := h.planService.Dashboard()
	if err != nil {
		if errors.Is(err, service.ErrNoDataset) {
			response.NotFound(c, "No sampling plan uploaded yet")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"version": version,
		"table":   table,
	})
}

// GetLegend handles GET /api/v1/plan/legend. Static presentation lookup for
// the frontend: completion-state colors and per-month calendar-week spans.
func (h *DashboardHandler) GetLegend(c *gin.Context) {
	response.Success(c, gin.H{
		"states":    schedule.StateColors,
		"kw_ranges": schedule.KWRanges,
	})
}

// GetStatus handles GET /api/v1/plan/status
func (h *DashboardHandler) GetStatus(c *gin.Context) {
	dataset, err := h.planService.Current()
	if err != nil {
		if errors.Is(err, service.ErrNoDataset) {
			response.Success(c, gin.H{"uploaded": false})
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"uploaded":     true,
		"version":      dataset.Version,
		"filename":     dataset.Filename,
		"uploaded_at":  dataset.UploadedAt,
		"has_geo_data": dataset.Map != nil,
	})
}
