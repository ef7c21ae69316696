package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/studrec/studentrecords-backend/internal/model"
	"github.com/studrec/studentrecords-backend/internal/response"
	"github.com/studrec/studentrecords-backend/internal/service"
	"github.com/studrec/studentrecords-backend/internal/validator"
)

// ExportHandler serves report generation and the export audit trail.
type ExportHandler struct {
	exports *service.ExportService
	log     zerolog.Logger
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exports *service.ExportService, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		exports: exports,
		log:     log.With().Str("component", "export_handler").Logger(),
	}
}

// Attendance godoc
// POST /api/export/attendance
func (h *ExportHandler) Attendance(c *gin.Context) {
	var req model.ExportAttendanceRequest
	if fields := validator.BindOptional(c, &req); fields != nil {
		response.Error(c, http.StatusBadRequest, validator.Message(fields))
		return
	}

	result, err := h.exports.ExportAttendance(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.CSV(c, result.Filename, result.CSV)
}

// Marks godoc
// POST /api/export/marks
func (h *ExportHandler) Marks(c *gin.Context) {
	var req model.ExportMarksRequest
	if fields := validator.BindOptional(c, &req); fields != nil {
		response.Error(c, http.StatusBadRequest, validator.Message(fields))
		return
	}

	result, err := h.exports.ExportMarks(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.CSV(c, result.Filename, result.CSV)
}

// Performance godoc
// POST /api/export/performance/:studentId
func (h *ExportHandler) Performance(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("studentId"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "Student not found")
		return
	}

	var req model.ExportPerformanceRequest
	if fields := validator.BindOptional(c, &req); fields != nil {
		response.Error(c, http.StatusBadRequest, validator.Message(fields))
		return
	}

	result, err := h.exports.ExportPerformance(c.Request.Context(), studentID, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.CSV(c, result.Filename, result.CSV)
}

// History godoc
// GET /api/export/history?exportType=&status=&limit=
func (h *ExportHandler) History(c *gin.Context) {
	filter := model.ExportHistoryFilter{
		ExportType: c.Query("exportType"),
		Status:     c.Query("status"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		filter.Limit = limit
	}

	exports, err := h.exports.History(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if exports == nil {
		exports = []model.Export{}
	}
	c.JSON(http.StatusOK, exports)
}

// Get godoc
// GET /api/export/:id
func (h *ExportHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "Export record not found")
		return
	}

	record, err := h.exports.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, record)
}
