package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gym-membership-directory/internal/infrastructure/identity"
	"github.com/oksasatya/gym-membership-directory/pkg/response"
)

// PasswordSignIn is implemented by identity.Local.
type PasswordSignIn interface {
	SignIn(ctx context.Context, email, password string) (string, time.Time, error)
}

// LoginHandler issues bearer tokens when the service is its own identity
// provider. With GoTrue, clients sign in against Supabase directly.
type LoginHandler struct {
	Auth   PasswordSignIn
	Logger *logrus.Logger
}

func NewLoginHandler(auth PasswordSignIn, logger *logrus.Logger) *LoginHandler {
	return &LoginHandler{Auth: auth, Logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *LoginHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "Email and password are required")
		return
	}
	token, exp, err := h.Auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, identity.ErrInvalidCredentials) {
		response.Error(c, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}
	if err != nil {
		writeError(c, h.Logger, err, "Failed to sign in")
		return
	}
	response.OK(c, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"expires_at":   exp.UTC(),
	})
}
