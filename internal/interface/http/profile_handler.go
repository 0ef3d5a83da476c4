package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gym-membership-directory/internal/application"
	"github.com/oksasatya/gym-membership-directory/pkg/response"
)

// ProfileHandler serves the caller's own records.
type ProfileHandler struct {
	Profiles  *application.ProfileService
	Directory *application.DirectoryService
	Logger    *logrus.Logger
}

func NewProfileHandler(profiles *application.ProfileService, directory *application.DirectoryService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles, Directory: directory, Logger: logger}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	p, err := h.Profiles.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeError(c, h.Logger, err, "Failed to fetch profile")
		return
	}
	response.OK(c, gin.H{"profile": p})
}

// MySubscription finds the member record whose email matches the caller's
// identity email.
func (h *ProfileHandler) MySubscription(c *gin.Context) {
	m, err := h.Directory.FindMemberByEmail(c.Request.Context(), c.GetString("userEmail"))
	if err != nil {
		writeError(c, h.Logger, err, "Failed to fetch subscription")
		return
	}
	response.OK(c, gin.H{"member": m})
}
