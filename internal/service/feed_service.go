package service

import (
	"context"
	"time"

	"hangout/backend/internal/metrics"
	"hangout/backend/internal/models"
	"hangout/backend/internal/timing"
	"hangout/backend/internal/visibility"
)

// FeedSort selects the order of a feed.
type FeedSort string

const (
	// SortTiming puts upcoming activities first, most urgent on top.
	SortTiming FeedSort = "timing"
	// SortRecent keeps the resolver's newest-created-first order.
	SortRecent FeedSort = "recent"
)

// ParseFeedSort defaults anything unknown to SortTiming.
func ParseFeedSort(s string) FeedSort {
	if FeedSort(s) == SortRecent {
		return SortRecent
	}
	return SortTiming
}

// FeedItem is one activity as seen by the viewer.
type FeedItem struct {
	Activity       models.Activity
	Timing         timing.Labels
	ViewerResponse models.DisplayResponse
	Participating  bool
}

type FeedService struct {
	store FeedStore
	now   func() time.Time
}

func NewFeedService(store FeedStore, now func() time.Time) *FeedService {
	if now == nil {
		now = time.Now
	}
	return &FeedService{store: store, now: now}
}

// List resolves the viewer's feed.
func (s *FeedService) List(ctx context.Context, viewerID string, filters visibility.Filters, order FeedSort) ([]FeedItem, error) {
	visible, err := s.resolve(ctx, viewerID, filters)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if order != SortRecent {
		visible = timing.Sort(visible, TimingInput, now)
	}
	return s.items(viewerID, visible, now), nil
}

// Sections resolves the feed and splits it into current and past activities.
func (s *FeedService) Sections(ctx context.Context, viewerID string, filters visibility.Filters) (current, past []FeedItem, err error) {
	visible, err := s.resolve(ctx, viewerID, filters)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	cur, old := timing.Partition(visible, TimingInput, now)
	return s.items(viewerID, cur, now), s.items(viewerID, old, now), nil
}

func (s *FeedService) resolve(ctx context.Context, viewerID string, filters visibility.Filters) ([]models.Activity, error) {
	friends, connections, err := relationSets(ctx, s.store, viewerID)
	if err != nil {
		return nil, err
	}
	candidates, err := s.store.GetActivityCandidates(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	visible := visibility.Resolve(visibility.Request{
		ViewerID:      viewerID,
		Candidates:    candidates,
		FriendIDs:     friends,
		ConnectionIDs: connections,
		Filters:       filters,
	})

	metrics.FeedResolutions.Inc()
	metrics.FeedCandidates.Observe(float64(len(candidates)))
	metrics.FeedVisible.Observe(float64(len(visible)))
	return visible, nil
}

func (s *FeedService) items(viewerID string, activities []models.Activity, now time.Time) []FeedItem {
	out := make([]FeedItem, len(activities))
	for i := range activities {
		out[i] = NewFeedItem(viewerID, activities[i], now)
	}
	return out
}

// NewFeedItem labels a single activity for viewerID.
func NewFeedItem(viewerID string, a models.Activity, now time.Time) FeedItem {
	return FeedItem{
		Activity:       a,
		Timing:         timing.Label(TimingInput(a), now),
		ViewerResponse: models.DisplayFor(a.ResponseOf(viewerID)),
		Participating:  visibility.IsParticipating(viewerID, &a),
	}
}

// TimingInput extracts the fields the classifier reads.
func TimingInput(a models.Activity) timing.Input {
	in := timing.Input{
		ID:        a.ID,
		Date:      a.DateValue(),
		Completed: a.CompletedAt != nil,
		CreatedAt: a.CreatedAt,
	}
	if a.Time != nil {
		in.Time = *a.Time
	}
	if a.Timeframe != nil {
		in.Timeframe = *a.Timeframe
	}
	return in
}
