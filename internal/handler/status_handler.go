package handler

import (
	"net/http"
	"time"

	"hangout/backend/internal/auth"
	"hangout/backend/internal/models"
	"hangout/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type StatusInput struct {
	Status  models.AvailabilityStatus `json:"status" binding:"required" example:"available"`
	Message *string                   `json:"message" example:"Free after 6, anyone up for food?"`
}

type StatusUpdateResponse struct {
	ID        string                    `json:"id"`
	Status    models.AvailabilityStatus `json:"status" example:"available"`
	Message   *string                   `json:"message"`
	CreatedAt time.Time                 `json:"createdAt"`
	User      UserResponse              `json:"user"`
}

type FriendStatusResponse struct {
	ID                 string                    `json:"id"`
	Name               *string                   `json:"name"`
	Avatar             *string                   `json:"avatar"`
	AvailabilityStatus models.AvailabilityStatus `json:"availabilityStatus" example:"busy"`
	StatusMessage      *string                   `json:"statusMessage"`
	LastUpdated        time.Time                 `json:"lastUpdated"`
}

func newStatusUpdateResponses(updates []models.StatusUpdate) []StatusUpdateResponse {
	out := make([]StatusUpdateResponse, len(updates))
	for i, u := range updates {
		out[i] = StatusUpdateResponse{
			ID:        u.ID,
			Status:    u.Status,
			Message:   u.Message,
			CreatedAt: u.CreatedAt,
			User:      newUserResponse(u.User),
		}
	}
	return out
}

// endregion

type StatusHandler struct {
	statuses *service.StatusService
}

func NewStatusHandler(statuses *service.StatusService) *StatusHandler {
	return &StatusHandler{statuses: statuses}
}

// Post godoc
// @Summary      Post a status update
// @Description  Also sets the user's current availability.
// @Tags         status
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body StatusInput true "New status"
// @Success      201 {object} StatusUpdateResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /status [post]
func (h *StatusHandler) Post(c *gin.Context) {
	var input StatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update, err := h.statuses.Post(c.Request.Context(), auth.UserID(c), input.Status, input.Message)
	if err != nil {
		respondError(c, err, "Failed to create status update")
		return
	}
	c.JSON(http.StatusCreated, newStatusUpdateResponses([]models.StatusUpdate{*update})[0])
}

// List godoc
// @Summary      List status updates
// @Description  type=friends returns friends' updates from the last 24 hours, anything else the caller's own.
// @Tags         status
// @Produce      json
// @Security     BearerAuth
// @Param        type query string false "my (default) or friends"
// @Success      200 {array}  StatusUpdateResponse
// @Failure      401 {object} ErrorResponse
// @Router       /status [get]
func (h *StatusHandler) List(c *gin.Context) {
	var (
		updates []models.StatusUpdate
		err     error
	)
	if c.Query("type") == "friends" {
		updates, err = h.statuses.Friends(c.Request.Context(), auth.UserID(c))
	} else {
		updates, err = h.statuses.Mine(c.Request.Context(), auth.UserID(c))
	}
	if err != nil {
		respondError(c, err, "Failed to get status updates")
		return
	}
	c.JSON(http.StatusOK, newStatusUpdateResponses(updates))
}

// Friends godoc
// @Summary      Friends' current availability
// @Tags         status
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array}  FriendStatusResponse
// @Failure      401 {object} ErrorResponse
// @Router       /friends/status [get]
func (h *StatusHandler) Friends(c *gin.Context) {
	friends, err := h.statuses.FriendsCurrent(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err, "Failed to get friends status")
		return
	}

	out := make([]FriendStatusResponse, len(friends))
	for i, f := range friends {
		out[i] = FriendStatusResponse{
			ID:                 f.User.ID,
			Name:               f.User.Name,
			Avatar:             f.User.Avatar,
			AvailabilityStatus: f.User.AvailabilityStatus,
			StatusMessage:      f.Message,
			LastUpdated:        f.User.UpdatedAt,
		}
	}
	c.JSON(http.StatusOK, out)
}
