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

// StudentHandler serves the student routes, including the legacy embedded
// attendance/marks upserts.
type StudentHandler struct {
	students *service.StudentService
	log      zerolog.Logger
}

// NewStudentHandler creates a StudentHandler.
func NewStudentHandler(students *service.StudentService, log zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		students: students,
		log:      log.With().Str("component", "student_handler").Logger(),
	}
}

// Create godoc
// POST /api/students
func (h *StudentHandler) Create(c *gin.Context) {
	var req model.CreateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.Error(c, http.StatusBadRequest, validator.Message(fields))
		return
	}

	student, err := h.students.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, student)
}

// List godoc
// GET /api/students
func (h *StudentHandler) List(c *gin.Context) {
	payload, err := h.students.ListProjectedJSON(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// Delete godoc
// DELETE /api/students/:id
func (h *StudentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "Not Found")
		return
	}

	if err := h.students.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// MarkAttendance godoc
// PUT /api/students/attendance
func (h *StudentHandler) MarkAttendance(c *gin.Context) {
	var req model.MarkStudentAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.Error(c, http.StatusBadRequest, validator.Message(fields))
		return
	}

	student, err := h.students.MarkAttendance(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// UpsertMark godoc
// PUT /api/students/marks
func (h *StudentHandler) UpsertMark(c *gin.Context) {
	var req model.UpsertStudentMarkRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.Error(c, http.StatusBadRequest, validator.Message(fields))
		return
	}

	student, err := h.students.UpsertMark(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, student)
}
