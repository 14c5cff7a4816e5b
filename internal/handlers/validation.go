package handlers

import (
	stderrors "errors"
	"io"

	"github.com/gin-gonic/gin"

	appErrors "github.com/charlesng35/kurukshetra/pkg/errors"
	"github.com/charlesng35/kurukshetra/pkg/response"
	appValidator "github.com/charlesng35/kurukshetra/pkg/validator"
)

var errInvalidPayload = appErrors.NewBadRequest("Invalid request")

// bindJSON decodes the JSON payload into dest. An empty body leaves dest
// untouched so that the service can report the missing fields itself.
func bindJSON[T any](c *gin.Context, dest *T) bool {
	if err := c.ShouldBindJSON(dest); err != nil && !stderrors.Is(err, io.EOF) {
		response.Error(c, errInvalidPayload)
		return false
	}
	return true
}

// bindAndValidate binds the JSON payload into dest and runs struct validation rules.
// When validation fails, an error response is automatically written and false is returned.
func bindAndValidate[T any](c *gin.Context, dest *T) bool {
	if !bindJSON(c, dest) {
		return false
	}

	if err := appValidator.ValidateStruct(dest); err != nil {
		response.Error(c, validationError(err))
		return false
	}

	return true
}

func validationError(err error) *appErrors.AppError {
	var ve appValidator.ValidationErrors
	if stderrors.As(err, &ve) && len(ve) > 0 {
		return appErrors.NewValidation(ve.Messages()...)
	}
	return appErrors.NewValidation()
}
