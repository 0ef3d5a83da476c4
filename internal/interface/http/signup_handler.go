package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gym-membership-directory/internal/application"
	"github.com/oksasatya/gym-membership-directory/internal/domain/entity"
	"github.com/oksasatya/gym-membership-directory/pkg/response"
)

type SignupHandler struct {
	Svc    *application.SignupService
	Logger *logrus.Logger
}

func NewSignupHandler(svc *application.SignupService, logger *logrus.Logger) *SignupHandler {
	return &SignupHandler{Svc: svc, Logger: logger}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"omitempty,role"`
}

func (h *SignupHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "Email, password, and name are required")
		return
	}

	p, err := h.Svc.Signup(c.Request.Context(), application.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     entity.Role(req.Role),
	})
	if err != nil {
		writeError(c, h.Logger, err, "Failed to sign up user")
		return
	}
	response.OK(c, gin.H{"success": true, "user": p})
}
