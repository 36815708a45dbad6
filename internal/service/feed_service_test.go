package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"hangout/backend/internal/models"
	"hangout/backend/internal/timing"
	"hangout/backend/internal/visibility"
)

var feedNow = time.Date(2026, 10, 18, 18, 0, 0, 0, time.UTC)

type fakeStore struct {
	friends     []string
	connections []string
	candidates  []models.Activity
	responses   []models.ActivityResponse
	err         error
}

func (f *fakeStore) GetFriendIDs(context.Context, string) ([]string, error) {
	return f.friends, f.err
}

func (f *fakeStore) GetPreviousConnectionIDs(context.Context, string) ([]string, error) {
	return f.connections, nil
}

func (f *fakeStore) GetActivityCandidates(context.Context, string) ([]models.Activity, error) {
	return f.candidates, nil
}

func (f *fakeStore) GetResponses(context.Context, string) ([]models.ActivityResponse, error) {
	return f.responses, nil
}

func ptr[T any](v T) *T { return &v }

func feedFixture() *fakeStore {
	today := datatypes.Date(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC))
	completed := feedNow.Add(-time.Hour)
	created := feedNow.Add(-24 * time.Hour)

	return &fakeStore{
		friends: []string{"friend"},
		candidates: []models.Activity{
			{
				ID: "done", CreatorID: "viewer", Visibility: models.VisibilityFriends,
				Category: models.CategoryPlanned, CompletedAt: &completed,
				CreatedAt: created.Add(4 * time.Minute),
			},
			{
				ID: "hidden", CreatorID: "stranger", Visibility: models.VisibilityFriends,
				Category: models.CategoryPlanned, Timeframe: ptr("now"),
				CreatedAt: created.Add(3 * time.Minute),
			},
			{
				ID: "later", CreatorID: "stranger", Visibility: models.VisibilityOpen,
				Category: models.CategoryPlanned, Timeframe: ptr("tomorrow"),
				CreatedAt: created.Add(2 * time.Minute),
				Responses: []models.ActivityResponse{{UserID: "viewer", Response: models.ResponseIn}},
			},
			{
				ID: "soon", CreatorID: "friend", Visibility: models.VisibilityFriends,
				Category: models.CategorySpontaneous, Date: &today, Time: ptr("18:30"),
				CreatedAt: created.Add(time.Minute),
			},
		},
	}
}

func itemIDs(items []FeedItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Activity.ID
	}
	return out
}

func TestFeedService_ListByTiming(t *testing.T) {
	svc := NewFeedService(feedFixture(), func() time.Time { return feedNow })

	items, err := svc.List(context.Background(), "viewer", visibility.Filters{}, SortTiming)
	require.NoError(t, err)
	assert.Equal(t, []string{"soon", "later", "done"}, itemIDs(items))

	soon := items[0]
	assert.True(t, soon.Timing.IsImmediate)
	assert.Equal(t, 30, soon.Timing.Priority)
	assert.Equal(t, models.DisplayNotInterested, soon.ViewerResponse)
	assert.False(t, soon.Participating)

	later := items[1]
	assert.Equal(t, models.DisplayInterested, later.ViewerResponse)
	assert.True(t, later.Participating)

	assert.True(t, items[2].Timing.IsPast)
	assert.Equal(t, timing.PastPriority, items[2].Timing.Priority)
}

func TestFeedService_ListByRecency(t *testing.T) {
	svc := NewFeedService(feedFixture(), func() time.Time { return feedNow })

	items, err := svc.List(context.Background(), "viewer", visibility.Filters{}, SortRecent)
	require.NoError(t, err)
	assert.Equal(t, []string{"done", "later", "soon"}, itemIDs(items))
}

func TestFeedService_Filters(t *testing.T) {
	svc := NewFeedService(feedFixture(), func() time.Time { return feedNow })

	items, err := svc.List(context.Background(), "viewer",
		visibility.ParseFilters("", "", "friends", ""), SortTiming)
	require.NoError(t, err)
	assert.Equal(t, []string{"soon"}, itemIDs(items))
}

func TestFeedService_Sections(t *testing.T) {
	svc := NewFeedService(feedFixture(), func() time.Time { return feedNow })

	current, past, err := svc.Sections(context.Background(), "viewer", visibility.Filters{})
	require.NoError(t, err)
	assert.Equal(t, []string{"soon", "later"}, itemIDs(current))
	assert.Equal(t, []string{"done"}, itemIDs(past))
}

func TestFeedService_StoreError(t *testing.T) {
	boom := errors.New("boom")
	store := feedFixture()
	store.err = boom
	svc := NewFeedService(store, func() time.Time { return feedNow })

	_, err := svc.List(context.Background(), "viewer", visibility.Filters{}, SortTiming)
	assert.ErrorIs(t, err, boom)
}

func TestParseFeedSort(t *testing.T) {
	assert.Equal(t, SortRecent, ParseFeedSort("recent"))
	assert.Equal(t, SortTiming, ParseFeedSort("timing"))
	assert.Equal(t, SortTiming, ParseFeedSort("bogus"))
	assert.Equal(t, SortTiming, ParseFeedSort(""))
}
