package models

import "time"

// StatusUpdate is a post a user makes when their availability changes.
// Posting one also sets User.AvailabilityStatus.
type StatusUpdate struct {
	ID        string             `gorm:"type:uuid;primaryKey"`
	UserID    string             `gorm:"type:uuid;not null;index:idx_status_user_created,priority:1"`
	Status    AvailabilityStatus `gorm:"size:20;not null"`
	Message   *string            `gorm:"size:280"`
	CreatedAt time.Time          `gorm:"index:idx_status_user_created,priority:2"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}
