package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gym-membership-directory/internal/application"
	"github.com/oksasatya/gym-membership-directory/internal/domain/entity"
	"github.com/oksasatya/gym-membership-directory/pkg/response"
)

const maxPhotoBytes = 5 << 20

type MemberHandler struct {
	Svc    *application.DirectoryService
	Logger *logrus.Logger
}

func NewMemberHandler(svc *application.DirectoryService, logger *logrus.Logger) *MemberHandler {
	return &MemberHandler{Svc: svc, Logger: logger}
}

type memberRequest struct {
	ID                string `json:"id"`
	Name              string `json:"name" binding:"required"`
	Email             string `json:"email" binding:"required"`
	PhoneNumber       string `json:"phoneNumber"`
	SubscriptionStart string `json:"subscriptionStart" binding:"omitempty,isodate"`
	SubscriptionEnd   string `json:"subscriptionEnd" binding:"omitempty,isodate"`
	Status            string `json:"status" binding:"omitempty,memberstatus"`
	MembershipType    string `json:"membershipType" binding:"omitempty,plan"`
}

// Upsert creates a member, or replaces it when the body carries an id.
func (h *MemberHandler) Upsert(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "Name and email are required")
		return
	}
	m, err := h.Svc.UpsertMember(c.Request.Context(), application.MemberInput{
		Name:              req.Name,
		Email:             req.Email,
		PhoneNumber:       req.PhoneNumber,
		SubscriptionStart: req.SubscriptionStart,
		SubscriptionEnd:   req.SubscriptionEnd,
		Status:            entity.MemberStatus(req.Status),
		MembershipType:    entity.MembershipType(req.MembershipType),
	}, req.ID)
	if err != nil {
		writeError(c, h.Logger, err, "Failed to save member")
		return
	}
	response.OK(c, gin.H{"success": true, "member": m})
}

func (h *MemberHandler) List(c *gin.Context) {
	ms, err := h.Svc.ListMembers(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err, "Failed to fetch members")
		return
	}
	if ms == nil {
		ms = []entity.Member{}
	}
	response.OK(c, gin.H{"members": ms})
}

func (h *MemberHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteMember(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.Logger, err, "Failed to delete member")
		return
	}
	response.OK(c, gin.H{"success": true})
}

func (h *MemberHandler) Search(c *gin.Context) {
	ms, err := h.Svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, h.Logger, err, "Failed to search members")
		return
	}
	response.OK(c, gin.H{"members": ms})
}

// UploadPhoto accepts a multipart "file" field holding an image.
func (h *MemberHandler) UploadPhoto(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPhotoBytes+(1<<20))
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "file is required", map[string]string{"file": "is required"})
		return
	}
	if fh.Size > maxPhotoBytes {
		response.Error(c, http.StatusBadRequest, "file too large", map[string]string{"file": "must be at most 5MB"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, err, "Failed to upload photo")
		return
	}
	defer func() { _ = f.Close() }()

	m, err := h.Svc.UploadPhoto(c.Request.Context(), c.Param("id"), fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		writeError(c, h.Logger, err, "Failed to upload photo")
		return
	}
	response.OK(c, gin.H{"success": true, "member": m})
}
