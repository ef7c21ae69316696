package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/studrec/studentrecords-backend/internal/model"
	"github.com/studrec/studentrecords-backend/internal/response"
	"github.com/studrec/studentrecords-backend/internal/service"
	"github.com/studrec/studentrecords-backend/internal/validator"
)

// AttendanceHandler serves the normalized attendance collection.
type AttendanceHandler struct {
	attendance *service.AttendanceService
	log        zerolog.Logger
}

// NewAttendanceHandler creates an AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceService, log zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		attendance: attendance,
		log:        log.With().Str("component", "attendance_handler").Logger(),
	}
}

// Mark godoc
// POST /api/attendance
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req model.CreateAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.Error(c, http.StatusBadRequest, validator.Message(fields))
		return
	}

	record, err := h.attendance.Mark(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// List godoc
// GET /api/attendance?studentId=&date=&startDate=&endDate=&status=
func (h *AttendanceHandler) List(c *gin.Context) {
	filter := model.AttendanceFilter{
		Date:      c.Query("date"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Status:    c.Query("status"),
	}
	if raw := c.Query("studentId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid studentId")
			return
		}
		filter.StudentID = &id
	}

	records, err := h.attendance.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if records == nil {
		records = []model.Attendance{}
	}
	c.JSON(http.StatusOK, records)
}

// ListByStudent godoc
// GET /api/attendance/student/:studentId?startDate=&endDate=
func (h *AttendanceHandler) ListByStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("studentId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid studentId")
		return
	}

	filter := model.AttendanceFilter{
		StudentID: &id,
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}
	records, err := h.attendance.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if records == nil {
		records = []model.Attendance{}
	}
	c.JSON(http.StatusOK, records)
}

// ListByDate godoc
// GET /api/attendance/date/:date
func (h *AttendanceHandler) ListByDate(c *gin.Context) {
	records, err := h.attendance.List(c.Request.Context(), model.AttendanceFilter{Date: c.Param("date")})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if records == nil {
		records = []model.Attendance{}
	}
	c.JSON(http.StatusOK, records)
}

// Update godoc
// PUT /api/attendance/:id
func (h *AttendanceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "Attendance record not found")
		return
	}

	var req model.UpdateAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.Error(c, http.StatusBadRequest, validator.Message(fields))
		return
	}

	record, err := h.attendance.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Delete godoc
// DELETE /api/attendance/:id
func (h *AttendanceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "Attendance record not found")
		return
	}

	if err := h.attendance.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Attendance record deleted successfully"})
}
