package handler

import (
	"net/http"
	"time"

	"hangout/backend/internal/auth"
	"hangout/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type AvatarUploadInput struct {
	ContentType string `json:"contentType" binding:"required" example:"image/jpeg"`
	Size        int64  `json:"size" binding:"required" example:"204800"`
}

type AvatarUploadResponse struct {
	UploadURL string    `json:"uploadUrl"`
	Key       string    `json:"key" example:"avatars/6a1f.../1792346400_9c2e....jpg"`
	PublicURL string    `json:"publicUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type AvatarConfirmInput struct {
	Key string `json:"key" binding:"required"`
}

// endregion

type AvatarHandler struct {
	avatars *service.AvatarService
}

func NewAvatarHandler(avatars *service.AvatarService) *AvatarHandler {
	return &AvatarHandler{avatars: avatars}
}

// UploadURL godoc
// @Summary      Get an avatar upload URL
// @Description  Returns a presigned URL the client PUTs the image to, then confirms with PUT /users/me/avatar.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body AvatarUploadInput true "Image metadata"
// @Success      200 {object} AvatarUploadResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /users/me/avatar/upload-url [post]
func (h *AvatarHandler) UploadURL(c *gin.Context) {
	var input AvatarUploadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upload, err := h.avatars.UploadURL(c.Request.Context(), auth.UserID(c), input.ContentType, input.Size)
	if err != nil {
		respondError(c, err, "Failed to create upload URL")
		return
	}
	c.JSON(http.StatusOK, AvatarUploadResponse{
		UploadURL: upload.UploadURL,
		Key:       upload.Key,
		PublicURL: upload.PublicURL,
		ExpiresAt: upload.ExpiresAt,
	})
}

// Confirm godoc
// @Summary      Set my avatar to an uploaded image
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body AvatarConfirmInput true "Uploaded object key"
// @Success      200 {object} UserResponse
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /users/me/avatar [put]
func (h *AvatarHandler) Confirm(c *gin.Context) {
	var input AvatarConfirmInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.avatars.Confirm(c.Request.Context(), auth.UserID(c), input.Key)
	if err != nil {
		respondError(c, err, "Failed to update avatar")
		return
	}
	c.JSON(http.StatusOK, newUserResponse(*user))
}
