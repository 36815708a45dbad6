// Package store loads the data the feed needs from Postgres.
package store

import (
	"context"
	"fmt"

	"hangout/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// GetActivityCandidates returns every activity the viewer could possibly
// see, newest first, with creator and responses loaded. The SQL mirrors the
// visibility rules so the set stays small; callers still re-check each row.
func (s *Store) GetActivityCandidates(ctx context.Context, viewerID string) ([]models.Activity, error) {
	friends := s.db.Model(&models.Friendship{}).
		Select("CASE WHEN sender_id = ? THEN receiver_id ELSE sender_id END", viewerID).
		Where("status = ? AND (sender_id = ? OR receiver_id = ?)", models.StatusAccepted, viewerID, viewerID)

	connections := s.db.Model(&models.PreviousConnection{}).
		Select("CASE WHEN user1_id = ? THEN user2_id ELSE user1_id END", viewerID).
		Where("user1_id = ? OR user2_id = ?", viewerID, viewerID)

	var activities []models.Activity
	err := s.db.WithContext(ctx).
		Preload("Creator").
		Preload("Responses", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Responses.User").
		Where("creator_id = ?", viewerID).
		Or("visibility = ?", models.VisibilityOpen).
		Or("creator_id IN (?) AND visibility IN ?", friends,
			[]models.Visibility{models.VisibilityFriends, models.VisibilityOpen}).
		Or("creator_id IN (?) AND visibility IN ?", connections,
			[]models.Visibility{models.VisibilityPrevious, models.VisibilityOpen}).
		Order("created_at DESC").
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load activity candidates: %w", err)
	}
	return activities, nil
}

// GetFriendIDs resolves accepted friendships in either direction.
func (s *Store) GetFriendIDs(ctx context.Context, userID string) ([]string, error) {
	var friendships []models.Friendship
	err := s.db.WithContext(ctx).
		Where("status = ? AND (sender_id = ? OR receiver_id = ?)", models.StatusAccepted, userID, userID).
		Find(&friendships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load friends: %w", err)
	}

	ids := make([]string, 0, len(friendships))
	for _, f := range friendships {
		ids = append(ids, f.Other(userID))
	}
	return ids, nil
}

// GetPreviousConnectionIDs resolves connections stored in either column.
func (s *Store) GetPreviousConnectionIDs(ctx context.Context, userID string) ([]string, error) {
	var connections []models.PreviousConnection
	err := s.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Find(&connections).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load previous connections: %w", err)
	}

	ids := make([]string, 0, len(connections))
	for _, c := range connections {
		ids = append(ids, c.Other(userID))
	}
	return ids, nil
}

// GetResponses lists an activity's responses, newest first.
func (s *Store) GetResponses(ctx context.Context, activityID string) ([]models.ActivityResponse, error) {
	var responses []models.ActivityResponse
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("activity_id = ?", activityID).
		Order("created_at DESC").
		Find(&responses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}
	return responses, nil
}

// SetAvatar stores url as userID's avatar and returns the updated user with
// the URL it replaced. A missing user is gorm.ErrRecordNotFound.
func (s *Store) SetAvatar(ctx context.Context, userID, url string) (*models.User, *string, error) {
	var (
		user     models.User
		previous *string
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, "id = ?", userID).Error; err != nil {
			return err
		}
		if user.Avatar != nil {
			old := *user.Avatar
			previous = &old
		}
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Update("avatar", url).Error; err != nil {
			return err
		}
		user.Avatar = &url
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &user, previous, nil
}
