package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/studrec/studentrecords-backend/internal/repository"
	"github.com/studrec/studentrecords-backend/internal/response"
	"github.com/studrec/studentrecords-backend/internal/service"
)

// respondError maps service/store errors onto the wire taxonomy:
// duplicate key and cross-field validation to 400, unresolved ids to 404,
// everything else to a logged 500 with a generic message.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, repository.ErrDuplicateStudent):
		response.Error(c, http.StatusBadRequest, "Student with this Roll or Email already exists")
	case errors.Is(err, service.ErrScoreExceedsTotal):
		response.Error(c, http.StatusBadRequest, "Score cannot be greater than total marks")
	case errors.Is(err, repository.ErrNotFound):
		response.Error(c, http.StatusNotFound, "Not Found")
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		response.ServerError(c)
	}
}
