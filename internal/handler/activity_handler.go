package handler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"hangout/backend/internal/auth"
	"hangout/backend/internal/hub"
	"hangout/backend/internal/models"
	"hangout/backend/internal/service"
	"hangout/backend/internal/timing"
	"hangout/backend/internal/visibility"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// region --- DTOs ---

// ActivityInput defines the body for creating an activity.
type ActivityInput struct {
	Title           string             `json:"title" binding:"required" example:"Pickup basketball"`
	Description     *string            `json:"description"`
	Location        *string            `json:"location" example:"Dolores Park"`
	Date            *string            `json:"date" example:"2026-10-18"`
	Time            *string            `json:"time" example:"18:30"`
	Timeframe       *string            `json:"timeframe" example:"in 30 mins"`
	Category        *models.Category   `json:"category" example:"spontaneous"`
	Visibility      *models.Visibility `json:"visibility" example:"friends"`
	MaxParticipants *int               `json:"maxParticipants" example:"6"`
}

// ActivityUpdateInput defines the body for changing an activity. Omitted
// fields are left unchanged.
type ActivityUpdateInput struct {
	Title           *string            `json:"title"`
	Description     *string            `json:"description"`
	Location        *string            `json:"location"`
	Date            *string            `json:"date" example:"2026-10-18"`
	Time            *string            `json:"time" example:"18:30"`
	Timeframe       *string            `json:"timeframe"`
	Category        *models.Category   `json:"category"`
	Visibility      *models.Visibility `json:"visibility"`
	MaxParticipants *int               `json:"maxParticipants"`
}

// SectionsResponse splits the feed into upcoming and past activities.
type SectionsResponse struct {
	Current []ActivityDTO `json:"current"`
	Past    []ActivityDTO `json:"past"`
}

// SuggestionsResponse lists example timeframes for a category.
type SuggestionsResponse struct {
	Category    string   `json:"category" example:"spontaneous"`
	Suggestions []string `json:"suggestions"`
}

// parseDateField returns nil for an absent date and an error for an
// unreadable one.
func parseDateField(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d := timing.ParseDate(*s)
	if d == nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", service.ErrInvalidInput)
	}
	return d, nil
}

// endregion

type ActivityHandler struct {
	feed       *service.FeedService
	activities *service.ActivityService
	responses  *service.ResponseService
	events     *hub.Hub
	now        func() time.Time
}

func NewActivityHandler(feed *service.FeedService, activities *service.ActivityService, responses *service.ResponseService, events *hub.Hub, now func() time.Time) *ActivityHandler {
	if now == nil {
		now = time.Now
	}
	return &ActivityHandler{feed: feed, activities: activities, responses: responses, events: events, now: now}
}

func feedFilters(c *gin.Context) visibility.Filters {
	return visibility.ParseFilters(
		c.Query("category"),
		c.Query("visibility"),
		c.Query("creatorType"),
		c.Query("participationStatus"),
	)
}

// ListActivities godoc
// @Summary      List the activity feed
// @Description  Returns every activity the user may see, filtered and sorted. Unknown filter values are ignored.
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Param        category            query string false "spontaneous or planned"
// @Param        visibility          query string false "friends, previous or open"
// @Param        creatorType         query string false "me, friends or connections"
// @Param        participationStatus query string false "participating or not_participating"
// @Param        sort                query string false "timing (default) or recent"
// @Param        page                query int    false "Page number" default(1)
// @Param        limit               query int    false "Items per page" default(20)
// @Success      200 {object} PaginatedResponse[ActivityDTO]
// @Failure      401 {object} ErrorResponse
// @Router       /activities [get]
func (h *ActivityHandler) List(c *gin.Context) {
	items, err := h.feed.List(c.Request.Context(), auth.UserID(c), feedFilters(c), service.ParseFeedSort(c.Query("sort")))
	if err != nil {
		respondError(c, err, "Failed to load activities")
		return
	}

	page, limit := pageParams(c)
	c.JSON(http.StatusOK, PaginateSlice(newActivityDTOs(items), page, limit))
}

// Sections godoc
// @Summary      List the feed as current and past sections
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Param        category            query string false "spontaneous or planned"
// @Param        visibility          query string false "friends, previous or open"
// @Param        creatorType         query string false "me, friends or connections"
// @Param        participationStatus query string false "participating or not_participating"
// @Success      200 {object} SectionsResponse
// @Failure      401 {object} ErrorResponse
// @Router       /activities/sections [get]
func (h *ActivityHandler) Sections(c *gin.Context) {
	current, past, err := h.feed.Sections(c.Request.Context(), auth.UserID(c), feedFilters(c))
	if err != nil {
		respondError(c, err, "Failed to load activities")
		return
	}
	c.JSON(http.StatusOK, SectionsResponse{Current: newActivityDTOs(current), Past: newActivityDTOs(past)})
}

// Create godoc
// @Summary      Create an activity
// @Description  Creates an activity owned by the user. The category is inferred from the timing fields when omitted.
// @Tags         activities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ActivityInput true "Activity"
// @Success      201 {object} ActivityDTO
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /activities [post]
func (h *ActivityHandler) Create(c *gin.Context) {
	var input ActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseDateField(input.Date)
	if err != nil {
		respondError(c, err, "Failed to create activity")
		return
	}

	userID := auth.UserID(c)
	a, err := h.activities.Create(c.Request.Context(), userID, service.ActivityInput{
		Title:           input.Title,
		Description:     input.Description,
		Location:        input.Location,
		Date:            date,
		Time:            input.Time,
		Timeframe:       input.Timeframe,
		Category:        input.Category,
		Visibility:      input.Visibility,
		MaxParticipants: input.MaxParticipants,
	})
	if err != nil {
		respondError(c, err, "Failed to create activity")
		return
	}
	c.JSON(http.StatusCreated, newActivityDTO(service.NewFeedItem(userID, *a, h.now())))
}

// Get godoc
// @Summary      Get an activity
// @Description  Activities the user may not see are reported as not found.
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Activity ID"
// @Success      200 {object} ActivityDTO
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /activities/{id} [get]
func (h *ActivityHandler) Get(c *gin.Context) {
	userID := auth.UserID(c)
	a, err := h.activities.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load activity")
		return
	}
	c.JSON(http.StatusOK, newActivityDTO(service.NewFeedItem(userID, *a, h.now())))
}

// Update godoc
// @Summary      Update an activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path string              true "Activity ID"
// @Param        input body ActivityUpdateInput true "Fields to change"
// @Success      200 {object} ActivityDTO
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /activities/{id} [put]
func (h *ActivityHandler) Update(c *gin.Context) {
	var input ActivityUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseDateField(input.Date)
	if err != nil {
		respondError(c, err, "Failed to update activity")
		return
	}

	userID := auth.UserID(c)
	a, err := h.activities.Update(c.Request.Context(), userID, c.Param("id"), service.ActivityPatch{
		Title:           input.Title,
		Description:     input.Description,
		Location:        input.Location,
		Date:            date,
		Time:            input.Time,
		Timeframe:       input.Timeframe,
		Category:        input.Category,
		Visibility:      input.Visibility,
		MaxParticipants: input.MaxParticipants,
	})
	if err != nil {
		respondError(c, err, "Failed to update activity")
		return
	}

	dto := newActivityDTO(service.NewFeedItem(userID, *a, h.now()))
	h.events.Publish(a.ID, service.EventActivityUpdated, dto)
	c.JSON(http.StatusOK, dto)
}

// Complete godoc
// @Summary      Mark an activity as done
// @Description  Completed activities always sort with the past ones.
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Activity ID"
// @Success      200 {object} ActivityDTO
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /activities/{id}/complete [post]
func (h *ActivityHandler) Complete(c *gin.Context) {
	userID := auth.UserID(c)
	a, err := h.activities.Complete(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to complete activity")
		return
	}

	dto := newActivityDTO(service.NewFeedItem(userID, *a, h.now()))
	h.events.Publish(a.ID, service.EventActivityUpdated, dto)
	c.JSON(http.StatusOK, dto)
}

// Delete godoc
// @Summary      Delete an activity
// @Tags         activities
// @Security     BearerAuth
// @Param        id path string true "Activity ID"
// @Success      204
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /activities/{id} [delete]
func (h *ActivityHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.activities.Delete(c.Request.Context(), auth.UserID(c), id); err != nil {
		respondError(c, err, "Failed to delete activity")
		return
	}
	h.events.Publish(id, service.EventActivityDeleted, gin.H{"id": id})
	c.Status(http.StatusNoContent)
}

// Events godoc
// @Summary      Stream live activity events
// @Description  Server-sent events for responses and changes to one activity.
// @Tags         activities
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        id path string true "Activity ID"
// @Success      200
// @Failure      404 {object} ErrorResponse
// @Router       /activities/{id}/events [get]
func (h *ActivityHandler) Events(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.activities.Get(c.Request.Context(), auth.UserID(c), id); err != nil {
		respondError(c, err, "Failed to load activity")
		return
	}

	client := hub.NewClient()
	h.events.Subscribe(id, client)
	defer h.events.Unsubscribe(id, client)
	log.Debug().Str("activity_id", id).Int("listeners", h.events.Listeners(id)).Msg("event stream opened")

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("message", string(msg))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// TimeframeSuggestions godoc
// @Summary      Suggest timeframes
// @Description  Example timeframe phrases for the activity form.
// @Tags         activities
// @Produce      json
// @Param        category query string false "spontaneous (default) or planned"
// @Success      200 {object} SuggestionsResponse
// @Router       /timeframes/suggestions [get]
func TimeframeSuggestions(c *gin.Context) {
	category := timing.Spontaneous
	if timing.Category(c.Query("category")) == timing.Planned {
		category = timing.Planned
	}
	c.JSON(http.StatusOK, SuggestionsResponse{
		Category:    string(category),
		Suggestions: timing.SuggestTimeframes(category),
	})
}
