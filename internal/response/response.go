package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"accumulator/internal/apperrors"
)

// Envelope represents the common JSON response contract.
type Envelope struct {
	Data  interface{}       `json:"data,omitempty"`
	Error *apperrors.Error  `json:"error,omitempty"`
	Meta  map[string]string `json:"meta,omitempty"`
}

// JSON sends a success response.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{Data: data})
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := apperrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, Envelope{Error: appErr})
}

// WantsHTML reports whether the caller prefers a rendered page over JSON.
// Callers that send no Accept header get HTML.
func WantsHTML(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEHTML
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
