package handler

import (
	"time"

	"hangout/backend/internal/models"
	"hangout/backend/internal/service"
)

// region --- DTOs ---

// UserResponse defines the public profile of a user.
type UserResponse struct {
	ID                 string                    `json:"id" example:"6f1c2b8e-2f4a-4c39-9a52-0c7d8f1e5b21"`
	Phone              string                    `json:"phone" example:"+15552345678"`
	Name               *string                   `json:"name" example:"Sam"`
	Avatar             *string                   `json:"avatar"`
	IsVerified         bool                      `json:"isVerified"`
	AvailabilityStatus models.AvailabilityStatus `json:"availabilityStatus" example:"available"`
	CreatedAt          time.Time                 `json:"createdAt"`
}

func newUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Phone:              u.Phone,
		Name:               u.Name,
		Avatar:             u.Avatar,
		IsVerified:         u.IsVerified,
		AvailabilityStatus: u.AvailabilityStatus,
		CreatedAt:          u.CreatedAt,
	}
}

func newUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = newUserResponse(u)
	}
	return out
}

// TimingResponse is the classifier's view of an activity.
type TimingResponse struct {
	IsPast        bool       `json:"isPast"`
	IsImmediate   bool       `json:"isImmediate"`
	Priority      int        `json:"priority" example:"30"`
	ResolvedAt    *time.Time `json:"resolvedAt,omitempty"`
	Category      string     `json:"category" example:"spontaneous"`
	Relative      string     `json:"relative" example:"in 30 minutes"`
	HappeningSoon bool       `json:"happeningSoon"`
}

// ResponseDTO is one user's answer to an activity.
type ResponseDTO struct {
	ID         string              `json:"id"`
	UserID     string              `json:"userId"`
	ActivityID string              `json:"activityId"`
	Response   models.ResponseKind `json:"response" example:"in"`
	User       *UserResponse       `json:"user,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

func newResponseDTO(r models.ActivityResponse) ResponseDTO {
	dto := ResponseDTO{
		ID:         r.ID,
		UserID:     r.UserID,
		ActivityID: r.ActivityID,
		Response:   r.Response,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if r.User.ID != "" {
		u := newUserResponse(r.User)
		dto.User = &u
	}
	return dto
}

func newResponseDTOs(rs []models.ActivityResponse) []ResponseDTO {
	out := make([]ResponseDTO, len(rs))
	for i, r := range rs {
		out[i] = newResponseDTO(r)
	}
	return out
}

// ActivityDTO is an activity as returned by the API.
type ActivityDTO struct {
	ID              string                 `json:"id"`
	Title           string                 `json:"title" example:"Pickup basketball"`
	Description     *string                `json:"description"`
	Location        *string                `json:"location" example:"Dolores Park"`
	Date            *string                `json:"date" example:"2026-10-18"`
	Time            *string                `json:"time" example:"18:30"`
	Timeframe       *string                `json:"timeframe" example:"in 30 mins"`
	Category        models.Category        `json:"category" example:"spontaneous"`
	Visibility      models.Visibility      `json:"visibility" example:"friends"`
	MaxParticipants *int                   `json:"maxParticipants"`
	CreatorID       string                 `json:"creatorId"`
	Creator         *UserResponse          `json:"creator,omitempty"`
	CompletedAt     *time.Time             `json:"completedAt"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
	InCount         int                    `json:"inCount"`
	Responses       []ResponseDTO          `json:"responses"`
	Timing          TimingResponse         `json:"timing"`
	UserResponse    models.DisplayResponse `json:"userResponse" example:"not_interested"`
	IsParticipating bool                   `json:"isParticipating"`
}

func newActivityDTO(item service.FeedItem) ActivityDTO {
	a := item.Activity
	dto := ActivityDTO{
		ID:              a.ID,
		Title:           a.Title,
		Description:     a.Description,
		Location:        a.Location,
		Time:            a.Time,
		Timeframe:       a.Timeframe,
		Category:        a.Category,
		Visibility:      a.Visibility,
		MaxParticipants: a.MaxParticipants,
		CreatorID:       a.CreatorID,
		CompletedAt:     a.CompletedAt,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
		InCount:         a.InCount(),
		Responses:       newResponseDTOs(a.Responses),
		Timing: TimingResponse{
			IsPast:        item.Timing.IsPast,
			IsImmediate:   item.Timing.IsImmediate,
			Priority:      item.Timing.Priority,
			ResolvedAt:    item.Timing.ResolvedAt,
			Category:      string(item.Timing.Category),
			Relative:      item.Timing.Relative,
			HappeningSoon: item.Timing.HappeningSoon,
		},
		UserResponse:    item.ViewerResponse,
		IsParticipating: item.Participating,
	}
	if d := a.DateValue(); d != nil {
		s := d.Format(time.DateOnly)
		dto.Date = &s
	}
	if a.Creator.ID != "" {
		u := newUserResponse(a.Creator)
		dto.Creator = &u
	}
	return dto
}

func newActivityDTOs(items []service.FeedItem) []ActivityDTO {
	out := make([]ActivityDTO, len(items))
	for i, it := range items {
		out[i] = newActivityDTO(it)
	}
	return out
}

// FriendRequestResponse is a pending or answered friend request.
type FriendRequestResponse struct {
	ID        string                  `json:"id"`
	Status    models.FriendshipStatus `json:"status" example:"pending"`
	Sender    *UserResponse           `json:"sender,omitempty"`
	Receiver  *UserResponse           `json:"receiver,omitempty"`
	CreatedAt time.Time               `json:"createdAt"`
}

func newFriendRequestResponse(f models.Friendship) FriendRequestResponse {
	out := FriendRequestResponse{ID: f.ID, Status: f.Status, CreatedAt: f.CreatedAt}
	if f.Sender.ID != "" {
		u := newUserResponse(f.Sender)
		out.Sender = &u
	}
	if f.Receiver.ID != "" {
		u := newUserResponse(f.Receiver)
		out.Receiver = &u
	}
	return out
}

// ConnectionResponse is a discoverable previous connection.
type ConnectionResponse struct {
	ID                string  `json:"id"`
	Name              *string `json:"name"`
	Phone             string  `json:"phone"`
	Avatar            *string `json:"avatar"`
	MutualFriendCount int     `json:"mutualFriendCount" example:"2"`
}

// ConnectionListResponse lists discoverable previous connections.
type ConnectionListResponse struct {
	Connections []ConnectionResponse `json:"connections"`
	Total       int                  `json:"total"`
}

// endregion
