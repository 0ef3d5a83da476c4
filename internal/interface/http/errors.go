package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gym-membership-directory/internal/application"
	"github.com/oksasatya/gym-membership-directory/pkg/response"
	"github.com/oksasatya/gym-membership-directory/pkg/validation"
)

// writeError maps an application error to its HTTP status. Unclassified
// errors become a 500 with the route's fallback message; their detail is
// only logged.
func writeError(c *gin.Context, logger *logrus.Logger, err error, fallback string) {
	var ae *application.Error
	msg := fallback
	var details map[string]string
	if errors.As(err, &ae) {
		msg = ae.Error()
		details = ae.Details
	}

	switch {
	case errors.Is(err, application.ErrValidation):
		response.Error(c, http.StatusBadRequest, msg, details)
	case errors.Is(err, application.ErrUpstream):
		response.Error(c, http.StatusBadRequest, msg, nil)
	case errors.Is(err, application.ErrUnauthenticated):
		response.Error(c, http.StatusUnauthorized, msg, nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error(c, http.StatusForbidden, msg, nil)
	case errors.Is(err, application.ErrNotFound):
		response.Error(c, http.StatusNotFound, msg, nil)
	default:
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"route":      c.FullPath(),
			"user_id":    c.GetString("userID"),
		}).Error(fallback)
		response.Error(c, http.StatusInternalServerError, fallback, nil)
	}
}

// bindError reports a request that failed gin binding.
func bindError(c *gin.Context, err error, requiredMsg string) {
	msg := "invalid payload"
	if validation.MissingRequired(err) {
		msg = requiredMsg
	}
	response.Error(c, http.StatusBadRequest, msg, validation.ToDetails(err))
}
