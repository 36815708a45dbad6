package service

import (
	"context"
	"fmt"
	"sort"

	"hangout/backend/internal/models"
	"hangout/backend/internal/visibility"

	"gorm.io/gorm"
)

// Suggestion is someone the user has hung out with but is not yet
// connected to as a friend.
type Suggestion struct {
	User              models.User
	MutualFriendCount int
}

type DiscoverService struct {
	db        *gorm.DB
	relations Relations
}

func NewDiscoverService(db *gorm.DB, relations Relations) *DiscoverService {
	return &DiscoverService{db: db, relations: relations}
}

// PreviousConnections suggests userID's previous connections who are not
// friends and have no open or blocked request with userID.
func (s *DiscoverService) PreviousConnections(ctx context.Context, userID string) ([]Suggestion, error) {
	friends, connections, err := relationSets(ctx, s.relations, userID)
	if err != nil {
		return nil, err
	}

	var requests []models.Friendship
	err = s.db.WithContext(ctx).
		Where("status <> ? AND (sender_id = ? OR receiver_id = ?)", models.StatusAccepted, userID, userID).
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load friend requests: %w", err)
	}
	excluded := visibility.NewIDSet()
	for _, r := range requests {
		excluded.Add(r.Other(userID))
	}

	candidates := Discoverable(connections, friends, excluded)
	if len(candidates) == 0 {
		return []Suggestion{}, nil
	}

	var users []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", candidates).Order("name").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	var edges []models.Friendship
	if len(friends) > 0 {
		friendIDs := friends.Slice()
		err = s.db.WithContext(ctx).
			Where("status = ?", models.StatusAccepted).
			Where(s.db.Where("sender_id IN ? AND receiver_id IN ?", candidates, friendIDs).
				Or("receiver_id IN ? AND sender_id IN ?", candidates, friendIDs)).
			Find(&edges).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load mutual friends: %w", err)
		}
	}
	counts := MutualCounts(edges, friends)

	out := make([]Suggestion, 0, len(users))
	for _, u := range users {
		out = append(out, Suggestion{User: u, MutualFriendCount: counts[u.ID]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MutualFriendCount > out[j].MutualFriendCount
	})
	return out, nil
}

// MutualFriends lists the friends userID and otherID have in common.
func (s *DiscoverService) MutualFriends(ctx context.Context, userID, otherID string) ([]models.User, error) {
	if userID == otherID {
		return nil, fmt.Errorf("%w: cannot compare a user with themselves", ErrInvalidInput)
	}

	mine, err := s.relations.GetFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	theirs, err := s.relations.GetFriendIDs(ctx, otherID)
	if err != nil {
		return nil, err
	}

	own := visibility.NewIDSet(mine...)
	var shared []string
	for _, id := range theirs {
		if own.Has(id) {
			shared = append(shared, id)
		}
	}
	if len(shared) == 0 {
		return []models.User{}, nil
	}

	var users []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", shared).Order("name").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load mutual friends: %w", err)
	}
	return users, nil
}

// Discoverable returns the connections that are neither friends nor
// excluded, sorted.
func Discoverable(connections, friends, excluded visibility.IDSet) []string {
	var out []string
	for _, id := range connections.Slice() {
		if friends.Has(id) || excluded.Has(id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// MutualCounts counts, per user, the accepted friendships in edges that
// lead into friends.
func MutualCounts(edges []models.Friendship, friends visibility.IDSet) map[string]int {
	counts := make(map[string]int)
	for _, e := range edges {
		switch {
		case friends.Has(e.ReceiverID) && !friends.Has(e.SenderID):
			counts[e.SenderID]++
		case friends.Has(e.SenderID) && !friends.Has(e.ReceiverID):
			counts[e.ReceiverID]++
		}
	}
	return counts
}
