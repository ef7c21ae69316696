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

// MarksHandler serves the normalized marks collection.
type MarksHandler struct {
	marks *service.MarksService
	log   zerolog.Logger
}

// NewMarksHandler creates a MarksHandler.
func NewMarksHandler(marks *service.MarksService, log zerolog.Logger) *MarksHandler {
	return &MarksHandler{
		marks: marks,
		log:   log.With().Str("component", "marks_handler").Logger(),
	}
}

// Record godoc
// POST /api/marks
func (h *MarksHandler) Record(c *gin.Context) {
	var req model.CreateMarkRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.Error(c, http.StatusBadRequest, validator.Message(fields))
		return
	}

	mark, err := h.marks.Record(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, mark)
}

// List godoc
// GET /api/marks?studentId=&subject=&examType=&minPercentage=&maxPercentage=
func (h *MarksHandler) List(c *gin.Context) {
	filter := model.MarkFilter{
		Subject:  c.Query("subject"),
		ExamType: c.Query("examType"),
	}
	if raw := c.Query("studentId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid studentId")
			return
		}
		filter.StudentID = &id
	}
	if raw := c.Query("minPercentage"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid minPercentage")
			return
		}
		filter.MinPercentage = &min
	}
	if raw := c.Query("maxPercentage"); raw != "" {
		max, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid maxPercentage")
			return
		}
		filter.MaxPercentage = &max
	}

	marks, err := h.marks.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if marks == nil {
		marks = []model.Mark{}
	}
	c.JSON(http.StatusOK, marks)
}

// ListByStudent godoc
// GET /api/marks/student/:studentId?subject=&examType=
func (h *MarksHandler) ListByStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("studentId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid studentId")
		return
	}

	marks, stats, err := h.marks.StudentMarks(c.Request.Context(), id, c.Query("subject"), c.Query("examType"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if marks == nil {
		marks = []model.Mark{}
	}
	c.JSON(http.StatusOK, gin.H{"marks": marks, "stats": stats})
}

// ListBySubject godoc
// GET /api/marks/subject/:subject?examType=
func (h *MarksHandler) ListBySubject(c *gin.Context) {
	subject := c.Param("subject")
	if !model.ValidSubject(subject) {
		response.Error(c, http.StatusBadRequest, "Invalid subject")
		return
	}

	marks, stats, err := h.marks.SubjectLeaderboard(c.Request.Context(), subject, c.Query("examType"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if marks == nil {
		marks = []model.Mark{}
	}
	c.JSON(http.StatusOK, gin.H{"marks": marks, "stats": stats})
}

// Update godoc
// PUT /api/marks/:id
func (h *MarksHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "Marks record not found")
		return
	}

	var req model.UpdateMarkRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.Error(c, http.StatusBadRequest, validator.Message(fields))
		return
	}

	mark, err := h.marks.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, mark)
}

// Delete godoc
// DELETE /api/marks/:id
func (h *MarksHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "Marks record not found")
		return
	}

	if err := h.marks.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Marks record deleted successfully"})
}
