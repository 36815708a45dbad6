package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hangout/backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	MaxAvatarBytes = 5 << 20
	// AvatarUploadTTL bounds how long a presigned upload URL is valid.
	AvatarUploadTTL = 15 * time.Minute
)

var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ObjectStore is the bucket avatars are uploaded to.
type ObjectStore interface {
	PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
	KeyFromURL(url string) (string, bool)
}

// AvatarUpload is a presigned upload slot for a profile picture.
type AvatarUpload struct {
	UploadURL string
	Key       string
	PublicURL string
	ExpiresAt time.Time
}

// AvatarUsers swaps the avatar URL stored on a user. *store.Store implements it.
type AvatarUsers interface {
	SetAvatar(ctx context.Context, userID, url string) (user *models.User, previous *string, err error)
}

type AvatarService struct {
	users AvatarUsers
	store ObjectStore
	now   func() time.Time
}

func NewAvatarService(users AvatarUsers, store ObjectStore, now func() time.Time) *AvatarService {
	return &AvatarService{users: users, store: store, now: now}
}

// UploadURL validates the file and reserves a key under the user's prefix.
func (s *AvatarService) UploadURL(ctx context.Context, userID, contentType string, size int64) (*AvatarUpload, error) {
	ext, ok := avatarExtensions[strings.ToLower(contentType)]
	if !ok {
		return nil, fmt.Errorf("%w: avatar must be a jpeg, png or webp image", ErrInvalidInput)
	}
	if size <= 0 || size > MaxAvatarBytes {
		return nil, fmt.Errorf("%w: avatar must be between 1 byte and 5MB", ErrInvalidInput)
	}

	now := s.now()
	key := fmt.Sprintf("%s%d_%s%s", avatarPrefix(userID), now.Unix(), uuid.NewString(), ext)
	url, err := s.store.PresignUpload(ctx, key, strings.ToLower(contentType), AvatarUploadTTL)
	if err != nil {
		return nil, err
	}

	return &AvatarUpload{
		UploadURL: url,
		Key:       key,
		PublicURL: s.store.PublicURL(key),
		ExpiresAt: now.Add(AvatarUploadTTL),
	}, nil
}

// Confirm points the user's avatar at an uploaded key and removes the
// previous upload, if it lived in the bucket.
func (s *AvatarService) Confirm(ctx context.Context, userID, key string) (*models.User, error) {
	if !strings.HasPrefix(key, avatarPrefix(userID)) || strings.Contains(key, "..") {
		return nil, fmt.Errorf("%w: key does not belong to this user", ErrForbidden)
	}
	exists, err := s.store.Exists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: avatar has not been uploaded", ErrNotFound)
	}

	user, previous, err := s.users.SetAvatar(ctx, userID, s.store.PublicURL(key))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}

	if previous != nil {
		s.removePrevious(ctx, *previous, key)
	}
	return user, nil
}

// removePrevious deletes the object behind a replaced avatar URL when it
// lives in the bucket. Failures are only logged.
func (s *AvatarService) removePrevious(ctx context.Context, previousURL, current string) {
	old, ok := s.store.KeyFromURL(previousURL)
	if !ok || old == current {
		return
	}
	if err := s.store.Delete(ctx, old); err != nil {
		log.Warn().Err(err).Str("key", old).Msg("failed to delete previous avatar")
	}
}

func avatarPrefix(userID string) string {
	return "avatars/" + userID + "/"
}
