package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// newID fills an empty string primary key before insert.
func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// BeforeCreate assigns a UUID to new users.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	newID(&u.ID)
	return nil
}

// BeforeCreate assigns a UUID to new activities.
func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	newID(&a.ID)
	return nil
}

func (r *ActivityResponse) BeforeCreate(tx *gorm.DB) error {
	newID(&r.ID)
	return nil
}

func (f *Friendship) BeforeCreate(tx *gorm.DB) error {
	newID(&f.ID)
	return nil
}

func (p *PreviousConnection) BeforeCreate(tx *gorm.DB) error {
	newID(&p.ID)
	return nil
}

func (s *StatusUpdate) BeforeCreate(tx *gorm.DB) error {
	newID(&s.ID)
	return nil
}
