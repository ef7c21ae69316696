package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studrec/studentrecords-backend/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
	Setup()
}

func testContext(body string) *gin.Context {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBind_ValidPayload(t *testing.T) {
	c := testContext(`{"name":"John Doe","roll":"R1","email":"john@example.edu"}`)

	var req model.CreateStudentRequest
	fields := Bind(c, &req)

	require.Nil(t, fields)
	assert.Equal(t, "John Doe", req.Name)
	assert.Equal(t, "R1", req.Roll)
}

func TestBind_MissingFieldsUseJSONTagNames(t *testing.T) {
	c := testContext(`{"name":"John Doe"}`)

	var req model.CreateStudentRequest
	fields := Bind(c, &req)

	require.NotNil(t, fields)
	assert.Contains(t, fields, "roll")
	assert.Contains(t, fields, "email")
	assert.NotContains(t, fields, "Roll")
}

func TestBind_InvalidEnum(t *testing.T) {
	c := testContext(`{"studentId":"` + "d8f7a0f6-24d5-4f11-9a4e-0a2b1c3d4e5f" + `","date":"2026-02-10","status":"Late"}`)

	var req model.CreateAttendanceRequest
	fields := Bind(c, &req)

	require.NotNil(t, fields)
	assert.Contains(t, fields, "status")
}

func TestBind_MalformedJSON(t *testing.T) {
	c := testContext(`{"name":`)

	var req model.CreateStudentRequest
	fields := Bind(c, &req)

	require.NotNil(t, fields)
	assert.Contains(t, fields, "detail")
}

func TestBindOptional_EmptyBodyIsZeroRequest(t *testing.T) {
	c := testContext("")

	var req model.ExportAttendanceRequest
	fields := BindOptional(c, &req)

	assert.Nil(t, fields)
	assert.Empty(t, req.StartDate)
	assert.Empty(t, req.Class)
}

func TestBindOptional_BodyStillValidated(t *testing.T) {
	c := testContext(`{"startDate":"10-02-2026"}`)

	var req model.ExportAttendanceRequest
	fields := BindOptional(c, &req)

	require.NotNil(t, fields)
	assert.Contains(t, fields, "startDate")
}

func TestMessage_Deterministic(t *testing.T) {
	fields := map[string]string{
		"roll":  "roll is a required field",
		"email": "email must be a valid email address",
	}

	msg := Message(fields)
	assert.Equal(t, "email must be a valid email address; roll is a required field", msg)
}
