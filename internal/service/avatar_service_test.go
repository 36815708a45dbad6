package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hangout/backend/internal/models"
)

type fakeBucket struct {
	objects   map[string]bool
	presigned []string
	err       error
}

func (b *fakeBucket) PresignUpload(_ context.Context, key, contentType string, _ time.Duration) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	b.presigned = append(b.presigned, key)
	return "https://upload.example.com/" + key + "?type=" + contentType, nil
}

func (b *fakeBucket) Exists(_ context.Context, key string) (bool, error) {
	return b.objects[key], b.err
}

func (b *fakeBucket) Delete(_ context.Context, key string) error {
	delete(b.objects, key)
	return nil
}

func (b *fakeBucket) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func (b *fakeBucket) KeyFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, "https://cdn.example.com/") {
		return "", false
	}
	return strings.TrimPrefix(url, "https://cdn.example.com/"), true
}

type fakeAvatarUsers struct {
	avatars map[string]*string
}

func (f *fakeAvatarUsers) SetAvatar(_ context.Context, userID, url string) (*models.User, *string, error) {
	previous, ok := f.avatars[userID]
	if !ok {
		return nil, nil, gorm.ErrRecordNotFound
	}
	f.avatars[userID] = &url
	return &models.User{ID: userID, Avatar: &url}, previous, nil
}

func TestAvatarUploadURL(t *testing.T) {
	now := time.Date(2026, 10, 18, 18, 0, 0, 0, time.UTC)
	bucket := &fakeBucket{}
	svc := NewAvatarService(nil, bucket, func() time.Time { return now })

	upload, err := svc.UploadURL(context.Background(), "u1", "image/PNG", 1024)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(upload.Key, "avatars/u1/1792346400_"))
	assert.True(t, strings.HasSuffix(upload.Key, ".png"))
	assert.Equal(t, "https://cdn.example.com/"+upload.Key, upload.PublicURL)
	assert.Contains(t, upload.UploadURL, "type=image/png")
	assert.Equal(t, now.Add(AvatarUploadTTL), upload.ExpiresAt)
	assert.Equal(t, []string{upload.Key}, bucket.presigned)
}

func TestAvatarUploadURLRejects(t *testing.T) {
	svc := NewAvatarService(nil, &fakeBucket{}, time.Now)

	tests := []struct {
		name        string
		contentType string
		size        int64
	}{
		{"gif", "image/gif", 1024},
		{"empty", "image/jpeg", 0},
		{"too large", "image/webp", MaxAvatarBytes + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UploadURL(context.Background(), "u1", tt.contentType, tt.size)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestAvatarUploadURLStoreError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewAvatarService(nil, &fakeBucket{err: boom}, time.Now)

	_, err := svc.UploadURL(context.Background(), "u1", "image/jpeg", 10)
	assert.ErrorIs(t, err, boom)
}

func TestAvatarConfirmChecksKey(t *testing.T) {
	bucket := &fakeBucket{objects: map[string]bool{"avatars/u2/a.png": true}}
	svc := NewAvatarService(nil, bucket, time.Now)

	_, err := svc.Confirm(context.Background(), "u1", "avatars/u2/a.png")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Confirm(context.Background(), "u1", "avatars/u1/../u2/a.png")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Confirm(context.Background(), "u1", "avatars/u1/missing.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAvatarConfirmReplacesPrevious(t *testing.T) {
	bucket := &fakeBucket{objects: map[string]bool{
		"avatars/u1/old.png": true,
		"avatars/u1/new.png": true,
	}}
	users := &fakeAvatarUsers{avatars: map[string]*string{
		"u1": ptr("https://cdn.example.com/avatars/u1/old.png"),
	}}
	svc := NewAvatarService(users, bucket, time.Now)

	user, err := svc.Confirm(context.Background(), "u1", "avatars/u1/new.png")
	require.NoError(t, err)
	require.NotNil(t, user.Avatar)
	assert.Equal(t, "https://cdn.example.com/avatars/u1/new.png", *user.Avatar)
	assert.Equal(t, "https://cdn.example.com/avatars/u1/new.png", *users.avatars["u1"])
	assert.False(t, bucket.objects["avatars/u1/old.png"])
	assert.True(t, bucket.objects["avatars/u1/new.png"])
}

func TestAvatarConfirmKeepsForeignAvatar(t *testing.T) {
	bucket := &fakeBucket{objects: map[string]bool{"avatars/u1/new.png": true}}
	users := &fakeAvatarUsers{avatars: map[string]*string{
		"u1": ptr("https://gravatar.example.com/u1.png"),
		"u2": nil,
	}}
	svc := NewAvatarService(users, bucket, time.Now)

	user, err := svc.Confirm(context.Background(), "u1", "avatars/u1/new.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatars/u1/new.png", *user.Avatar)
	assert.True(t, bucket.objects["avatars/u1/new.png"])

	bucket.objects["avatars/u2/first.png"] = true
	user, err = svc.Confirm(context.Background(), "u2", "avatars/u2/first.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatars/u2/first.png", *user.Avatar)
}

func TestAvatarConfirmUnknownUser(t *testing.T) {
	bucket := &fakeBucket{objects: map[string]bool{"avatars/ghost/a.png": true}}
	svc := NewAvatarService(&fakeAvatarUsers{avatars: map[string]*string{}}, bucket, time.Now)

	_, err := svc.Confirm(context.Background(), "ghost", "avatars/ghost/a.png")
	assert.ErrorIs(t, err, ErrNotFound)
}
