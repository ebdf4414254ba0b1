package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/twmlab/probenplan-go/internal/service"
	"github.com/twmlab/probenplan-go/internal/spreadsheet"
	"github.com/twmlab/probenplan-go/pkg/response"
)

// UploadHandler handles spreadsheet uploads
type UploadHandler struct {
	planService    *service.PlanService
	maxUploadBytes int64
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(planService *service.PlanService, maxUploadBytes int64) *UploadHandler {
	return &UploadHandler{
		planService:    planService,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload handles POST /api/v1/plan/upload
func (h *UploadHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Missing file upload field 'file'")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	summary, err := h.planService.Upload(fileHeader.Filename, file)
	if err != nil {
		var missing *spreadsheet.MissingColumnsError
		if errors.As(err, &missing) {
			response.BadRequest(c, missing.Error())
			return
		}
		response.Error(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	response.Success(c, summary)
}

// History handles GET /api/v1/plan/uploads
func (h *UploadHandler) History(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		response.BadRequest(c, "Invalid limit parameter")
		return
	}

	records, err := h.planService.History(limit)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  records,
		"count": len(records),
	})
}
