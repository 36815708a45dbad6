package service

import (
	"context"

	"hangout/backend/internal/models"
	"hangout/backend/internal/visibility"
)

// Relations resolves a user's social graph.
type Relations interface {
	GetFriendIDs(ctx context.Context, userID string) ([]string, error)
	GetPreviousConnectionIDs(ctx context.Context, userID string) ([]string, error)
}

// FeedStore is everything the feed reads. *store.Store implements it.
type FeedStore interface {
	Relations
	GetActivityCandidates(ctx context.Context, viewerID string) ([]models.Activity, error)
}

// ResponseStore reads activity responses.
type ResponseStore interface {
	Relations
	GetResponses(ctx context.Context, activityID string) ([]models.ActivityResponse, error)
}

// relationSets loads both of userID's relationship sets.
func relationSets(ctx context.Context, r Relations, userID string) (friends, connections visibility.IDSet, err error) {
	friendIDs, err := r.GetFriendIDs(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	connectionIDs, err := r.GetPreviousConnectionIDs(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return visibility.NewIDSet(friendIDs...), visibility.NewIDSet(connectionIDs...), nil
}
