package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hangout/backend/internal/models"
)

func TestBuildActivity_Defaults(t *testing.T) {
	a, err := BuildActivity("me", ActivityInput{Title: "  Coffee  ", Timeframe: ptr("now")}, feedNow)
	require.NoError(t, err)

	assert.Equal(t, "Coffee", a.Title)
	assert.Equal(t, "me", a.CreatorID)
	assert.Equal(t, models.VisibilityFriends, a.Visibility)
	assert.Equal(t, models.CategorySpontaneous, a.Category)
	assert.Nil(t, a.Date)
}

func TestBuildActivity_InfersCategory(t *testing.T) {
	tests := []struct {
		name string
		in   ActivityInput
		want models.Category
	}{
		{"timeframe soon", ActivityInput{Timeframe: ptr("in 20 mins")}, models.CategorySpontaneous},
		{"timeframe next week", ActivityInput{Timeframe: ptr("next week")}, models.CategoryPlanned},
		{"nothing", ActivityInput{}, models.CategoryPlanned},
		{"within the hour", ActivityInput{Date: ptr(feedNow), Time: ptr("19:00")}, models.CategorySpontaneous},
		{"in two days", ActivityInput{Date: ptr(feedNow.AddDate(0, 0, 2)), Time: ptr("19:00")}, models.CategoryPlanned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Title = "x"
			a, err := BuildActivity("me", tt.in, feedNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Category)
		})
	}
}

func TestBuildActivity_ExplicitFieldsWin(t *testing.T) {
	a, err := BuildActivity("me", ActivityInput{
		Title:      "Hike",
		Timeframe:  ptr("now"),
		Category:   ptr(models.CategoryPlanned),
		Visibility: ptr(models.VisibilityOpen),
	}, feedNow)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryPlanned, a.Category)
	assert.Equal(t, models.VisibilityOpen, a.Visibility)
}

func TestBuildActivity_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   ActivityInput
	}{
		{"blank title", ActivityInput{Title: "   "}},
		{"zero participants", ActivityInput{Title: "x", MaxParticipants: ptr(0)}},
		{"bad time", ActivityInput{Title: "x", Time: ptr("25:00")}},
		{"bad category", ActivityInput{Title: "x", Category: ptr(models.Category("later"))}},
		{"bad visibility", ActivityInput{Title: "x", Visibility: ptr(models.Visibility("public"))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildActivity("me", tt.in, feedNow)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestApplyPatch(t *testing.T) {
	a, err := BuildActivity("me", ActivityInput{Title: "Coffee", Timeframe: ptr("now")}, feedNow)
	require.NoError(t, err)

	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	err = ApplyPatch(a, ActivityPatch{
		Title:           ptr("Brunch"),
		Date:            &date,
		Time:            ptr("11:00"),
		MaxParticipants: ptr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, "Brunch", a.Title)
	require.NotNil(t, a.DateValue())
	assert.True(t, a.DateValue().Equal(date))
	assert.Equal(t, "11:00", *a.Time)
	assert.Equal(t, 4, *a.MaxParticipants)
	assert.Equal(t, models.CategorySpontaneous, a.Category, "category is not re-inferred")

	assert.ErrorIs(t, ApplyPatch(a, ActivityPatch{Title: ptr("")}), ErrInvalidInput)
	assert.ErrorIs(t, ApplyPatch(a, ActivityPatch{Visibility: ptr(models.Visibility("nobody"))}), ErrInvalidInput)
}
