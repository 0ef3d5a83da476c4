package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gym-membership-directory/internal/application"
	"github.com/oksasatya/gym-membership-directory/internal/domain/entity"
	"github.com/oksasatya/gym-membership-directory/pkg/response"
)

const (
	identityKey = "identity"
	profileKey  = "profile"
)

func bearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Auth verifies the bearer token with the identity provider. It sets
// userID and userEmail (and the full identity) in the Gin context.
func Auth(gate *application.Gate, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "Unauthorized - no token provided", nil)
			return
		}
		ident, err := gate.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.WithError(err).WithField("request_id", c.GetString("request_id")).Debug("token rejected")
			response.Error(c, http.StatusUnauthorized, "Unauthorized - invalid token", nil)
			return
		}
		c.Set(identityKey, ident)
		c.Set("userID", ident.ID)
		c.Set("userEmail", ident.Email)
		c.Next()
	}
}

// RequireAdmin must run after Auth.
func RequireAdmin(gate *application.Gate, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := IdentityFrom(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Unauthorized - no token provided", nil)
			return
		}
		p, err := gate.RequireAdmin(c.Request.Context(), ident)
		switch {
		case err == nil:
		case errors.Is(err, application.ErrForbidden):
			response.Error(c, http.StatusForbidden, "Forbidden - admin access required", nil)
			return
		default:
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"user_id":    ident.ID,
			}).Error("admin check failed")
			response.Error(c, http.StatusInternalServerError, "Failed to verify access", nil)
			return
		}
		c.Set(profileKey, p)
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (entity.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return entity.Identity{}, false
	}
	ident, ok := v.(entity.Identity)
	return ident, ok
}
