package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/twmlab/probenplan-go/internal/geomap"
	"github.com/twmlab/probenplan-go/internal/service"
	"github.com/twmlab/probenplan-go/pkg/response"
)

// MapHandler serves the monitoring-point map view
type MapHandler struct {
	mapService *service.MapService
}

// NewMapHandler creates a new map handler
func NewMapHandler(mapService *service.MapService) *MapHandler {
	return &MapHandler{mapService: mapService}
}

// GetPoints handles GET /api/v1/plan/map
func (h *MapHandler) GetPoints(c *gin.Context) {
	filter := parseFilter(c)

	points, version, err := h.mapService.Points(filter)
	if err != nil {
		writeMapError(c, err)
		return
	}

	response.Success(c, gin.H{
		"version": version,
		"points":  points,
		"count":   len(points),
	})
}

// GetFilterOptions handles GET /api/v1/plan/map/filters
func (h *MapHandler) GetFilterOptions(c *gin.Context) {
	options, err := h.mapService.Options()
	if err != nil {
		writeMapError(c, err)
		return
	}
	response.Success(c, options)
}

// GetStatistics handles GET /api/v1/plan/map/statistics
func (h *MapHandler) GetStatistics(c *gin.Context) {
	stats, err := h.mapService.Statistics(parseFilter(c))
	if err != nil {
		writeMapError(c, err)
		return
	}
	response.Success(c, stats)
}

func parseFilter(c *gin.Context) service.MapFilter {
	return service.MapFilter{
		Categories:     c.QueryArray("category"),
		Customers:      c.QueryArray("customer"),
		Parameters:     c.QueryArray("parameter"),
		Frequencies:    c.QueryArray("frequency"),
		PNTypes:        c.QueryArray("pn_type"),
		ShowComplete:   c.DefaultQuery("complete", "true") != "false",
		ShowIncomplete: c.DefaultQuery("incomplete", "true") != "false",
	}
}

func writeMapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoDataset):
		response.NotFound(c, "No sampling plan uploaded yet")
	case errors.Is(err, geomap.ErrNoGeoData):
		response.NotFound(c, "The uploaded file doesn't contain geographical data")
	default:
		response.InternalError(c, err.Error())
	}
}
