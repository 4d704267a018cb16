package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelops/internal/domain"
	"hotelops/internal/pkg/lock"
	"hotelops/internal/pkg/validator"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// BindError reports a request gin could not bind, with the offending fields
// under error.details.
func BindError(c *gin.Context, message string, err error) {
	ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", message, validator.BindingDetails(err))
}

// FromError writes the error envelope for an engine error kind. Unknown
// errors are attached to the gin context for the request logger and reported
// as INTERNAL_ERROR.
func FromError(c *gin.Context, err error) {
	status, code := Classify(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		Error(c, status, code, "Internal server error")
		return
	}
	Error(c, status, code, err.Error())
}

func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidRange):
		return http.StatusBadRequest, "INVALID_RANGE"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, domain.ErrRoomUnavailable):
		return http.StatusConflict, "ROOM_UNAVAILABLE"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, "INVALID_TRANSITION"
	case errors.Is(err, domain.ErrConflict), errors.Is(err, lock.ErrLockTimeout):
		return http.StatusConflict, "CONFLICT"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
