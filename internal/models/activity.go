package models

import (
	"time"

	"gorm.io/datatypes"
)

// Category describes how far in advance an activity was organized.
type Category string

const (
	CategorySpontaneous Category = "spontaneous"
	CategoryPlanned     Category = "planned"
)

func (c Category) Valid() bool {
	return c == CategorySpontaneous || c == CategoryPlanned
}

// Visibility controls who besides the creator may discover an activity.
type Visibility string

const (
	VisibilityFriends  Visibility = "friends"
	VisibilityPrevious Visibility = "previous"
	VisibilityOpen     Visibility = "open"
)

func (v Visibility) Valid() bool {
	switch v {
	case VisibilityFriends, VisibilityPrevious, VisibilityOpen:
		return true
	}
	return false
}

// Activity is a hangout posted by its creator.
//
// Date and Time are optional structured fields; Timeframe is the free-text
// fallback ("in 30 mins", "tomorrow evening"). Whether an activity is past or
// upcoming is derived at read time and never stored, except for CompletedAt
// which the creator sets explicitly.
type Activity struct {
	ID              string `gorm:"type:uuid;primaryKey"`
	Title           string `gorm:"size:255;not null"`
	Description     *string
	Location        *string `gorm:"size:255"`
	Date            *datatypes.Date
	Time            *string    `gorm:"size:5"`
	Timeframe       *string    `gorm:"size:255"`
	Category        Category   `gorm:"size:20;not null;default:'spontaneous';index"`
	Visibility      Visibility `gorm:"size:20;not null;default:'friends';index"`
	MaxParticipants *int
	CreatorID       string `gorm:"type:uuid;not null;index"`
	CompletedAt     *time.Time
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time

	Creator   User               `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE;"`
	Responses []ActivityResponse `gorm:"foreignKey:ActivityID"`
}

// DateValue returns the structured date as a time.Time, or nil.
func (a *Activity) DateValue() *time.Time {
	if a.Date == nil {
		return nil
	}
	t := time.Time(*a.Date)
	return &t
}

// InCount counts the "in" responses, not including the creator.
func (a *Activity) InCount() int {
	n := 0
	for _, r := range a.Responses {
		if r.Response == ResponseIn && r.UserID != a.CreatorID {
			n++
		}
	}
	return n
}

// ResponseOf returns the response userID left on this activity, if any.
func (a *Activity) ResponseOf(userID string) *ActivityResponse {
	for i := range a.Responses {
		if a.Responses[i].UserID == userID {
			return &a.Responses[i]
		}
	}
	return nil
}
