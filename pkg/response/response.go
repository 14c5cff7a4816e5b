package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/charlesng35/kurukshetra/pkg/errors"
)

// ErrorBody is the payload written for every failed request.
type ErrorBody struct {
	Message string   `json:"message"`
	Code    string   `json:"code,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// MessageBody is the payload for operations that only report an outcome.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON writes the payload as-is. Resource endpoints return bare documents and
// arrays, so no envelope is applied.
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Message writes a {"message": ...} payload.
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, MessageBody{Message: message})
}

// Error writes a JSON error response derived from an AppError.
func Error(c *gin.Context, err error) {
	if err == nil {
		err = appErrors.ErrInternalServer
	}

	appErr := appErrors.FromError(err)
	status := appErr.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}

	c.JSON(status, ErrorBody{
		Message: appErr.Message,
		Code:    appErr.Code,
		Errors:  appErr.Details,
	})
}

// Abort writes the error response and stops the middleware chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
