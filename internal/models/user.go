package models

import "time"

// AvailabilityStatus is what a user shows their friends.
type AvailabilityStatus string

const (
	AvailabilityAvailable AvailabilityStatus = "available"
	AvailabilityBusy      AvailabilityStatus = "busy"
	AvailabilityInvisible AvailabilityStatus = "invisible"
)

func (s AvailabilityStatus) Valid() bool {
	switch s {
	case AvailabilityAvailable, AvailabilityBusy, AvailabilityInvisible:
		return true
	}
	return false
}

// User represents a user in the system. Users sign in with their phone number.
type User struct {
	ID                 string             `gorm:"type:uuid;primaryKey"`
	Phone              string             `gorm:"size:32;unique;not null"`
	Name               *string            `gorm:"size:255"`
	Avatar             *string            `gorm:"size:512"`
	IsVerified         bool               `gorm:"not null;default:false"`
	AvailabilityStatus AvailabilityStatus `gorm:"size:20;not null;default:'available'"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
