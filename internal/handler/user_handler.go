package handler

import (
	"net/http"

	"hangout/backend/internal/auth"
	"hangout/backend/internal/models"
	"hangout/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileInput defines the body for updating the signed-in user's profile.
type ProfileInput struct {
	Name               *string                    `json:"name" example:"Sam"`
	Avatar             *string                    `json:"avatar"`
	AvailabilityStatus *models.AvailabilityStatus `json:"availabilityStatus" example:"busy"`
}

type UserHandler struct {
	users    *service.UserService
	discover *service.DiscoverService
}

func NewUserHandler(users *service.UserService, discover *service.DiscoverService) *UserHandler {
	return &UserHandler{users: users, discover: discover}
}

// UpdateMe godoc
// @Summary      Update my profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ProfileInput true "Fields to change"
// @Success      200 {object} UserResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /users/me [patch]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var input ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), auth.UserID(c), service.ProfilePatch{
		Name:               input.Name,
		Avatar:             input.Avatar,
		AvailabilityStatus: input.AvailabilityStatus,
	})
	if err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, newUserResponse(*user))
}

// Search godoc
// @Summary      Search for users
// @Description  Finds verified users by name or phone number.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        q     query string false "Name or phone fragment"
// @Param        page  query int    false "Page number" default(1)
// @Param        limit query int    false "Items per page" default(20)
// @Success      200 {object} PaginatedResponse[UserResponse]
// @Failure      401 {object} ErrorResponse
// @Router       /users [get]
func (h *UserHandler) Search(c *gin.Context) {
	page, limit := pageParams(c)
	users, total, err := h.users.Search(c.Request.Context(), auth.UserID(c), c.Query("q"),
		service.Page{Number: page, Size: limit})
	if err != nil {
		respondError(c, err, "Failed to search users")
		return
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(newUserResponses(users), total, page, limit))
}

// MutualFriends godoc
// @Summary      List mutual friends
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Other user ID"
// @Success      200 {array}  UserResponse
// @Failure      400 {object} ErrorResponse
// @Router       /users/{id}/mutual-friends [get]
func (h *UserHandler) MutualFriends(c *gin.Context) {
	users, err := h.discover.MutualFriends(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load mutual friends")
		return
	}
	c.JSON(http.StatusOK, newUserResponses(users))
}

// PreviousConnections godoc
// @Summary      Discover previous connections
// @Description  People the user has hung out with who are not friends yet, with mutual friend counts.
// @Tags         discover
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} ConnectionListResponse
// @Failure      401 {object} ErrorResponse
// @Router       /discover/previous-connections [get]
func (h *UserHandler) PreviousConnections(c *gin.Context) {
	suggestions, err := h.discover.PreviousConnections(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err, "Failed to get previous connections")
		return
	}

	out := make([]ConnectionResponse, len(suggestions))
	for i, s := range suggestions {
		out[i] = ConnectionResponse{
			ID:                s.User.ID,
			Name:              s.User.Name,
			Phone:             s.User.Phone,
			Avatar:            s.User.Avatar,
			MutualFriendCount: s.MutualFriendCount,
		}
	}
	c.JSON(http.StatusOK, ConnectionListResponse{Connections: out, Total: len(out)})
}
