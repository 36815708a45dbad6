package handler

import (
	"net/http"

	"hangout/backend/internal/auth"
	"hangout/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// RespondInput defines the body for answering an activity.
type RespondInput struct {
	Response models.ResponseKind `json:"response" binding:"required" example:"in"`
}

// ListResponses godoc
// @Summary      List responses to an activity
// @Tags         responses
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Activity ID"
// @Success      200 {array}  ResponseDTO
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /activities/{id}/responses [get]
func (h *ActivityHandler) ListResponses(c *gin.Context) {
	responses, err := h.responses.List(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load responses")
		return
	}
	c.JSON(http.StatusOK, newResponseDTOs(responses))
}

// Respond godoc
// @Summary      Respond to an activity
// @Description  Records "in" or "maybe", replacing an earlier answer. Going "in" links the user with everyone else who is in.
// @Tags         responses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path string       true "Activity ID"
// @Param        input body RespondInput true "Response"
// @Success      200 {object} ResponseDTO
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse "Activity is full"
// @Router       /activities/{id}/responses [post]
func (h *ActivityHandler) Respond(c *gin.Context) {
	var input RespondInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	r, err := h.responses.Respond(c.Request.Context(), auth.UserID(c), c.Param("id"), input.Response)
	if err != nil {
		respondError(c, err, "Failed to save response")
		return
	}
	c.JSON(http.StatusOK, newResponseDTO(*r))
}

// RemoveResponse godoc
// @Summary      Withdraw a response
// @Tags         responses
// @Security     BearerAuth
// @Param        id path string true "Activity ID"
// @Success      204
// @Failure      401 {object} ErrorResponse
// @Router       /activities/{id}/responses [delete]
func (h *ActivityHandler) RemoveResponse(c *gin.Context) {
	if err := h.responses.Remove(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		respondError(c, err, "Failed to remove response")
		return
	}
	c.Status(http.StatusNoContent)
}
