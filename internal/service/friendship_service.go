package service

import (
	"context"
	"errors"
	"fmt"

	"hangout/backend/internal/models"

	"gorm.io/gorm"
)

// RequestDirection selects incoming or outgoing friend requests.
type RequestDirection string

const (
	RequestsReceived RequestDirection = "received"
	RequestsSent     RequestDirection = "sent"
)

// ParseRequestDirection defaults to RequestsReceived.
func ParseRequestDirection(s string) RequestDirection {
	if RequestDirection(s) == RequestsSent {
		return RequestsSent
	}
	return RequestsReceived
}

type FriendshipService struct {
	db *gorm.DB
}

func NewFriendshipService(db *gorm.DB) *FriendshipService {
	return &FriendshipService{db: db}
}

// SendRequest asks the user registered under phone to become senderID's
// friend. Only one friendship may exist per pair, whoever sent it.
func (s *FriendshipService) SendRequest(ctx context.Context, senderID, phone string) (*models.Friendship, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}

	var receiver models.User
	err = s.db.WithContext(ctx).Where("phone = ?", normalized).First(&receiver).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: no user with that phone number", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if receiver.ID == senderID {
		return nil, fmt.Errorf("%w: cannot send a friend request to yourself", ErrInvalidInput)
	}

	friendship := models.Friendship{SenderID: senderID, ReceiverID: receiver.ID, Status: models.StatusPending}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findPair(tx, senderID, receiver.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: a friendship or request already exists (%s)", ErrConflict, existing.Status)
		}
		return createFriendship(tx, &friendship)
	})
	if err != nil {
		return nil, err
	}

	friendship.Receiver = receiver
	return &friendship, nil
}

// Respond answers a pending request. Only its receiver may answer.
func (s *FriendshipService) Respond(ctx context.Context, userID, requestID string, status models.FriendshipStatus) (*models.Friendship, error) {
	if status != models.StatusAccepted && status != models.StatusBlocked {
		return nil, fmt.Errorf("%w: status must be accepted or blocked", ErrInvalidInput)
	}

	var f models.Friendship
	err := s.db.WithContext(ctx).Preload("Sender").First(&f, "id = ?", requestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load friend request: %w", err)
	}
	if f.ReceiverID != userID {
		return nil, ErrForbidden
	}
	if f.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: request already %s", ErrConflict, f.Status)
	}

	if err := s.db.WithContext(ctx).Model(&f).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update friend request: %w", err)
	}
	f.Status = status
	return &f, nil
}

// Requests lists userID's pending requests in one direction, newest first.
func (s *FriendshipService) Requests(ctx context.Context, userID string, dir RequestDirection) ([]models.Friendship, error) {
	q := s.db.WithContext(ctx).Where("status = ?", models.StatusPending)
	if dir == RequestsSent {
		q = q.Where("sender_id = ?", userID).Preload("Receiver")
	} else {
		q = q.Where("receiver_id = ?", userID).Preload("Sender")
	}

	var requests []models.Friendship
	if err := q.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to load friend requests: %w", err)
	}
	return requests, nil
}

// Friends lists the users userID has an accepted friendship with.
func (s *FriendshipService) Friends(ctx context.Context, userID string) ([]models.User, error) {
	var friendships []models.Friendship
	err := s.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where("status = ? AND (sender_id = ? OR receiver_id = ?)", models.StatusAccepted, userID, userID).
		Order("updated_at DESC").
		Find(&friendships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load friends: %w", err)
	}

	users := make([]models.User, 0, len(friendships))
	for _, f := range friendships {
		if f.SenderID == userID {
			users = append(users, f.Receiver)
		} else {
			users = append(users, f.Sender)
		}
	}
	return users, nil
}

// Remove ends a friendship or withdraws a pending request between userID
// and otherID. Blocks stay in place.
func (s *FriendshipService) Remove(ctx context.Context, userID, otherID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		f, err := findPair(tx, userID, otherID)
		if err != nil {
			return err
		}
		if f == nil || f.Status == models.StatusBlocked {
			return ErrNotFound
		}
		if err := tx.Delete(f).Error; err != nil {
			return fmt.Errorf("failed to remove friendship: %w", err)
		}
		return nil
	})
}

// findPair returns the friendship between a and b in either direction, or nil.
// createFriendship inserts f. A concurrent request for the same pair in
// either direction trips the unordered pair index and becomes ErrConflict.
func createFriendship(tx *gorm.DB, f *models.Friendship) error {
	return friendshipInsertError(tx.Create(f).Error)
}

func friendshipInsertError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: a friendship or request already exists", ErrConflict)
	}
	return fmt.Errorf("failed to create friend request: %w", err)
}

func findPair(tx *gorm.DB, a, b string) (*models.Friendship, error) {
	var f models.Friendship
	err := tx.Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up friendship: %w", err)
	}
	return &f, nil
}
