package handler

import (
	"net/http"

	"hangout/backend/internal/auth"
	"hangout/backend/internal/models"
	"hangout/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// FriendRequestInput defines the body for sending a friend request.
type FriendRequestInput struct {
	Phone string `json:"phone" binding:"required" example:"(555) 234-5678"`
}

// FriendRequestAnswer defines the body for answering a friend request.
type FriendRequestAnswer struct {
	Status models.FriendshipStatus `json:"status" binding:"required" example:"accepted"`
}

type FriendHandler struct {
	friends *service.FriendshipService
}

func NewFriendHandler(friends *service.FriendshipService) *FriendHandler {
	return &FriendHandler{friends: friends}
}

// List godoc
// @Summary      List friends
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array}  UserResponse
// @Failure      401 {object} ErrorResponse
// @Router       /friends [get]
func (h *FriendHandler) List(c *gin.Context) {
	users, err := h.friends.Friends(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err, "Failed to fetch friends")
		return
	}
	c.JSON(http.StatusOK, newUserResponses(users))
}

// Requests godoc
// @Summary      List pending friend requests
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        type query string false "received (default) or sent"
// @Success      200 {array}  FriendRequestResponse
// @Failure      401 {object} ErrorResponse
// @Router       /friends/requests [get]
func (h *FriendHandler) Requests(c *gin.Context) {
	requests, err := h.friends.Requests(c.Request.Context(), auth.UserID(c), service.ParseRequestDirection(c.Query("type")))
	if err != nil {
		respondError(c, err, "Failed to fetch friend requests")
		return
	}

	out := make([]FriendRequestResponse, len(requests))
	for i, r := range requests {
		out[i] = newFriendRequestResponse(r)
	}
	c.JSON(http.StatusOK, out)
}

// SendRequest godoc
// @Summary      Send a friend request
// @Description  Looks the receiver up by phone number.
// @Tags         friendship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body FriendRequestInput true "Receiver phone"
// @Success      201 {object} FriendRequestResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /friends/requests [post]
func (h *FriendHandler) SendRequest(c *gin.Context) {
	var input FriendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := h.friends.SendRequest(c.Request.Context(), auth.UserID(c), input.Phone)
	if err != nil {
		respondError(c, err, "Failed to send friend request")
		return
	}
	c.JSON(http.StatusCreated, newFriendRequestResponse(*f))
}

// AnswerRequest godoc
// @Summary      Accept or block a friend request
// @Tags         friendship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path string              true "Request ID"
// @Param        input body FriendRequestAnswer true "accepted or blocked"
// @Success      200 {object} FriendRequestResponse
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /friends/requests/{id} [put]
func (h *FriendHandler) AnswerRequest(c *gin.Context) {
	var input FriendRequestAnswer
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := h.friends.Respond(c.Request.Context(), auth.UserID(c), c.Param("id"), input.Status)
	if err != nil {
		respondError(c, err, "Failed to update friend request")
		return
	}
	c.JSON(http.StatusOK, newFriendRequestResponse(*f))
}

// Remove godoc
// @Summary      Remove a friend
// @Description  Ends a friendship or withdraws a pending request with the given user.
// @Tags         friendship
// @Security     BearerAuth
// @Param        id path string true "Other user ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /friends/{id} [delete]
func (h *FriendHandler) Remove(c *gin.Context) {
	if err := h.friends.Remove(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		respondError(c, err, "Failed to remove friend")
		return
	}
	c.Status(http.StatusNoContent)
}
