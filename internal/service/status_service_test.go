package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hangout/backend/internal/models"
)

func TestLatestMessages(t *testing.T) {
	updates := []models.StatusUpdate{
		{UserID: "a", Message: ptr("out for tacos")},
		{UserID: "b", Message: nil},
		{UserID: "a", Message: ptr("older")},
		{UserID: "b", Message: ptr("")},
		{UserID: "b", Message: ptr("at the gym")},
	}

	messages := LatestMessages(updates)
	assert.Equal(t, map[string]string{"a": "out for tacos", "b": "at the gym"}, messages)
	assert.Empty(t, LatestMessages(nil))
}

func TestCleanStatusMessage(t *testing.T) {
	m, err := cleanStatusMessage(nil)
	require.NoError(t, err)
	assert.Nil(t, m)

	m, err = cleanStatusMessage(ptr("   "))
	require.NoError(t, err)
	assert.Nil(t, m)

	m, err = cleanStatusMessage(ptr("  free tonight "))
	require.NoError(t, err)
	assert.Equal(t, "free tonight", *m)

	_, err = cleanStatusMessage(ptr(strings.Repeat("é", MaxStatusMessageLength)))
	assert.NoError(t, err)

	_, err = cleanStatusMessage(ptr(strings.Repeat("x", MaxStatusMessageLength+1)))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPostRejectsBeforeTouchingDB(t *testing.T) {
	svc := NewStatusService(nil, &fakeStore{}, time.Now)

	_, err := svc.Post(context.Background(), "u1", models.AvailabilityStatus("asleep"), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Post(context.Background(), "u1", models.AvailabilityBusy, ptr(strings.Repeat("x", 300)))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFriendStatusWithoutFriends(t *testing.T) {
	svc := NewStatusService(nil, &fakeStore{}, time.Now)

	updates, err := svc.Friends(context.Background(), "lonely")
	require.NoError(t, err)
	assert.Empty(t, updates)

	current, err := svc.FriendsCurrent(context.Background(), "lonely")
	require.NoError(t, err)
	assert.Empty(t, current)
}
