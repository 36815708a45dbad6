package service

import (
	"context"
	"fmt"
	"strings"

	"hangout/backend/internal/models"

	"gorm.io/gorm"
)

// ProfilePatch changes the given fields of a user's profile.
type ProfilePatch struct {
	Name               *string
	Avatar             *string
	AvailabilityStatus *models.AvailabilityStatus
}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// UpdateProfile applies p to userID's profile and returns the result.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, p ProfilePatch) (*models.User, error) {
	updates := map[string]interface{}{}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		updates["name"] = name
	}
	if p.Avatar != nil {
		updates["avatar"] = strings.TrimSpace(*p.Avatar)
	}
	if p.AvailabilityStatus != nil {
		if !p.AvailabilityStatus.Valid() {
			return nil, fmt.Errorf("%w: unknown availability status %q", ErrInvalidInput, *p.AvailabilityStatus)
		}
		updates["availability_status"] = *p.AvailabilityStatus
	}

	db := s.db.WithContext(ctx)
	user, err := findUser(db, userID)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return user, nil
	}
	if err := db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return findUser(db, userID)
}

// Search finds verified users by name or phone, excluding the viewer.
func (s *UserService) Search(ctx context.Context, viewerID, query string, page Page) ([]models.User, int64, error) {
	db := s.db.WithContext(ctx).
		Where("is_verified = ? AND id <> ?", true, viewerID)
	if q := strings.TrimSpace(query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		db = db.Where("LOWER(name) LIKE ? OR phone LIKE ?", pattern, pattern)
	}
	return paginate[models.User](db.Order("name"), page)
}
