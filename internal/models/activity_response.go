package models

import "time"

// ResponseKind is a user's answer to an activity. Not being interested is
// represented by having no response row at all.
type ResponseKind string

const (
	ResponseIn    ResponseKind = "in"
	ResponseMaybe ResponseKind = "maybe"
)

func (k ResponseKind) Valid() bool {
	return k == ResponseIn || k == ResponseMaybe
}

// ActivityResponse records one user's response to one activity.
// The (UserID, ActivityID) pair is unique; responding again overwrites.
type ActivityResponse struct {
	ID         string       `gorm:"type:uuid;primaryKey"`
	UserID     string       `gorm:"type:uuid;not null;uniqueIndex:idx_response_user_activity"`
	ActivityID string       `gorm:"type:uuid;not null;uniqueIndex:idx_response_user_activity;index"`
	Response   ResponseKind `gorm:"size:10;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	User     User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Activity Activity `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE;"`
}

// DisplayResponse is the three-state value the UI renders for a viewer.
type DisplayResponse string

const (
	DisplayInterested    DisplayResponse = "interested"
	DisplayMaybe         DisplayResponse = "maybe"
	DisplayNotInterested DisplayResponse = "not_interested"
)

// DisplayFor projects an optional stored response into its display state.
func DisplayFor(r *ActivityResponse) DisplayResponse {
	if r == nil {
		return DisplayNotInterested
	}
	if r.Response == ResponseIn {
		return DisplayInterested
	}
	return DisplayMaybe
}
