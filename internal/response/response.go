package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The wire contract is deliberately plain: success bodies are the entities
// themselves and every error is {"error": "<message>"} with 400/404/500.

// Error sends an error response.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

// AbortError aborts the middleware chain and sends an error response.
func AbortError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"error": message})
}

// ServerError sends the generic 500 reply. The underlying cause is logged
// server-side, never leaked to the client.
func ServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Server error")
}

// CSV sends a generated report as a file attachment.
func CSV(c *gin.Context, filename string, payload []byte) {
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", payload)
}
