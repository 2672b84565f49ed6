package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/specimen-catalog/internal/application"
	"github.com/oksasatya/specimen-catalog/pkg/response"
)

// statusFor maps service failure kinds to HTTP statuses. Anything
// unclassified is a server error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, application.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err with its mapped status. Server errors are logged and their
// cause is kept out of the response body.
func fail(c *gin.Context, logger *logrus.Logger, message string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		if logger != nil {
			logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error(message)
		}
		response.Error(c, status, message, http.StatusText(status))
		return
	}
	response.Error(c, status, message, err.Error())
}
