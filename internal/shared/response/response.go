package response

import (
	"net/http"

	"go-workforce/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// Envelope wraps every API response body.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{
		Status:  status,
		Message: apperror.MessageSuccess,
		Data:    data,
	})
}

// Fail writes a failure envelope. Data is always omitted.
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{
		Status:  status,
		Message: message,
	})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
