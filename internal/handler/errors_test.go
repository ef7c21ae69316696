package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/studrec/studentrecords-backend/internal/repository"
	"github.com/studrec/studentrecords-backend/internal/service"
)

func TestRespondError_WireTaxonomy(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "duplicate student",
			err:      repository.ErrDuplicateStudent,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Student with this Roll or Email already exists"}`,
		},
		{
			name:     "score above total",
			err:      service.ErrScoreExceedsTotal,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Score cannot be greater than total marks"}`,
		},
		{
			name:     "not found",
			err:      repository.ErrNotFound,
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"Not Found"}`,
		},
		{
			name:     "wrapped not found",
			err:      errors.Join(errors.New("load student"), repository.ErrNotFound),
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"Not Found"}`,
		},
		{
			name:     "unexpected cause stays generic",
			err:      errors.New("pq: relation dropped"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Server error"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, zerolog.Nop(), tc.err)

			assert.Equal(t, tc.wantCode, w.Code)
			assert.JSONEq(t, tc.wantBody, w.Body.String())
		})
	}
}
