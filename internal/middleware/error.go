package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

const (
	internalErrorTitle   = "Something went wrong!"
	internalErrorMessage = "Internal server error"
)

// ErrorHandler recovers panics and renders errors attached with c.Error that no
// handler answered. In production the message is generic; otherwise it is the raw error.
func ErrorHandler(production bool) gin.HandlerFunc {
	log := logrus.WithField("component", "error_handler")

	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				err := fmt.Errorf("panic: %v", rec)
				log.WithError(err).WithField("path", c.Request.URL.Path).Error("recovered from panic")
				if !c.Writer.Written() {
					c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody(err, production))
				} else {
					c.Abort()
				}
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		log.WithError(err).WithField("path", c.Request.URL.Path).Error("unhandled request error")
		c.JSON(http.StatusInternalServerError, errorBody(err, production))
	}
}

// ErrorMessage returns err's text outside production and a generic message in production
func ErrorMessage(err error, production bool) string {
	if production || err == nil {
		return internalErrorMessage
	}
	return err.Error()
}

func errorBody(err error, production bool) ErrorResponse {
	return ErrorResponse{
		Error:   internalErrorTitle,
		Message: ErrorMessage(err, production),
	}
}
