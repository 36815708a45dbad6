package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"hangout/backend/internal/models"

	"gorm.io/gorm"
)

const (
	MaxStatusMessageLength = 280
	// FriendStatusWindow is how far back the friends' status feed reaches.
	FriendStatusWindow = 24 * time.Hour

	myStatusLimit     = 20
	friendStatusLimit = 50
)

// FriendStatus is a friend's current availability plus their latest status message.
type FriendStatus struct {
	User    models.User
	Message *string
}

type StatusService struct {
	db        *gorm.DB
	relations Relations
	now       func() time.Time
}

func NewStatusService(db *gorm.DB, relations Relations, now func() time.Time) *StatusService {
	return &StatusService{db: db, relations: relations, now: now}
}

// Post records a status update and makes it the user's current availability.
func (s *StatusService) Post(ctx context.Context, userID string, status models.AvailabilityStatus, message *string) (*models.StatusUpdate, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown availability status %q", ErrInvalidInput, status)
	}
	message, err := cleanStatusMessage(message)
	if err != nil {
		return nil, err
	}

	update := models.StatusUpdate{UserID: userID, Status: status, Message: message}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&update).Error; err != nil {
			return fmt.Errorf("failed to create status update: %w", err)
		}
		res := tx.Model(&models.User{}).Where("id = ?", userID).Update("availability_status", status)
		if res.Error != nil {
			return fmt.Errorf("failed to update availability: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Preload("User").First(&update, "id = ?", update.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &update, nil
}

// Mine lists the user's own recent status updates, newest first.
func (s *StatusService) Mine(ctx context.Context, userID string) ([]models.StatusUpdate, error) {
	var updates []models.StatusUpdate
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(myStatusLimit).
		Find(&updates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load status updates: %w", err)
	}
	return updates, nil
}

// Friends lists status updates friends posted within FriendStatusWindow.
func (s *StatusService) Friends(ctx context.Context, userID string) ([]models.StatusUpdate, error) {
	friendIDs, err := s.relations.GetFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(friendIDs) == 0 {
		return []models.StatusUpdate{}, nil
	}

	var updates []models.StatusUpdate
	err = s.db.WithContext(ctx).
		Preload("User").
		Where("user_id IN ? AND created_at >= ?", friendIDs, s.now().Add(-FriendStatusWindow)).
		Order("created_at DESC").
		Limit(friendStatusLimit).
		Find(&updates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load friends' status updates: %w", err)
	}
	return updates, nil
}

// FriendsCurrent returns every friend's availability, ordered by name.
func (s *StatusService) FriendsCurrent(ctx context.Context, userID string) ([]FriendStatus, error) {
	friendIDs, err := s.relations.GetFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(friendIDs) == 0 {
		return []FriendStatus{}, nil
	}

	db := s.db.WithContext(ctx)
	var friends []models.User
	if err := db.Where("id IN ?", friendIDs).Order("name").Find(&friends).Error; err != nil {
		return nil, fmt.Errorf("failed to load friends: %w", err)
	}

	var updates []models.StatusUpdate
	err = db.Where("user_id IN ? AND message IS NOT NULL AND message <> ''", friendIDs).
		Order("created_at DESC").
		Find(&updates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load status messages: %w", err)
	}

	messages := LatestMessages(updates)
	out := make([]FriendStatus, len(friends))
	for i, f := range friends {
		out[i] = FriendStatus{User: f}
		if m, ok := messages[f.ID]; ok {
			out[i].Message = &m
		}
	}
	return out, nil
}

// LatestMessages picks each user's first non-empty message from updates
// ordered newest first.
func LatestMessages(updates []models.StatusUpdate) map[string]string {
	out := make(map[string]string)
	for _, u := range updates {
		if u.Message == nil || *u.Message == "" {
			continue
		}
		if _, seen := out[u.UserID]; !seen {
			out[u.UserID] = *u.Message
		}
	}
	return out
}

func cleanStatusMessage(message *string) (*string, error) {
	if message == nil {
		return nil, nil
	}
	m := strings.TrimSpace(*message)
	if m == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(m) > MaxStatusMessageLength {
		return nil, fmt.Errorf("%w: status message is longer than %d characters", ErrInvalidInput, MaxStatusMessageLength)
	}
	return &m, nil
}
