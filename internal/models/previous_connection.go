package models

import "time"

// PreviousConnection records that two users were both "in" on some activity.
// User1ID is always the lexically smaller id so each pair has one row.
type PreviousConnection struct {
	ID         string  `gorm:"type:uuid;primaryKey"`
	User1ID    string  `gorm:"type:uuid;not null;uniqueIndex:idx_connection_pair"`
	User2ID    string  `gorm:"type:uuid;not null;uniqueIndex:idx_connection_pair;index"`
	ActivityID *string `gorm:"type:uuid"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	User1 User `gorm:"foreignKey:User1ID;constraint:OnDelete:CASCADE;"`
	User2 User `gorm:"foreignKey:User2ID;constraint:OnDelete:CASCADE;"`
}

// NewPreviousConnection normalizes the pair ordering.
func NewPreviousConnection(a, b string, activityID *string) PreviousConnection {
	if b < a {
		a, b = b, a
	}
	return PreviousConnection{User1ID: a, User2ID: b, ActivityID: activityID}
}

// Other returns the id on the opposite side of the connection from userID.
func (p PreviousConnection) Other(userID string) string {
	if p.User1ID == userID {
		return p.User2ID
	}
	return p.User1ID
}
