package service

import (
	"context"
	"errors"
	"fmt"

	"hangout/backend/internal/metrics"
	"hangout/backend/internal/models"
	"hangout/backend/internal/visibility"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Event types published for an activity.
const (
	EventResponseCreated = "response.created"
	EventResponseRemoved = "response.removed"
	EventActivityUpdated = "activity.updated"
	EventActivityDeleted = "activity.deleted"
)

// Publisher pushes live events to clients watching an activity.
type Publisher interface {
	Publish(activityID, eventType string, payload interface{})
}

type ResponseService struct {
	db        *gorm.DB
	store     ResponseStore
	publisher Publisher
}

func NewResponseService(db *gorm.DB, store ResponseStore) *ResponseService {
	return &ResponseService{db: db, store: store}
}

// SetPublisher enables live events.
func (s *ResponseService) SetPublisher(p Publisher) {
	s.publisher = p
}

// Respond records userID's response, replacing any earlier one. Going "in"
// also records a previous connection between userID and the creator and
// every participant already in. All writes share one transaction.
func (s *ResponseService) Respond(ctx context.Context, userID, activityID string, kind models.ResponseKind) (*models.ActivityResponse, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: response must be in or maybe", ErrInvalidInput)
	}

	friends, connections, err := relationSets(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}

	var saved models.ActivityResponse
	var written int
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.Activity
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Responses").
			First(&a, "id = ?", activityID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load activity: %w", err)
		}
		if !visibility.CanView(userID, &a, friends, connections) {
			return ErrNotFound
		}

		if err := checkCapacity(&a, userID, kind); err != nil {
			return err
		}

		response := models.ActivityResponse{UserID: userID, ActivityID: activityID, Response: kind}
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "activity_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"response", "updated_at"}),
		}).Create(&response).Error
		if err != nil {
			return fmt.Errorf("failed to save response: %w", err)
		}

		if kind == models.ResponseIn {
			pairs := ConnectionsFor(a.ID, userID, a.CreatorID, inParticipants(&a))
			if len(pairs) > 0 {
				err := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "user1_id"}, {Name: "user2_id"}},
					DoUpdates: clause.AssignmentColumns([]string{"activity_id", "updated_at"}),
				}).Create(&pairs).Error
				if err != nil {
					return fmt.Errorf("failed to record previous connections: %w", err)
				}
			}
			written = len(pairs)
		}

		return tx.Preload("User").
			First(&saved, "user_id = ? AND activity_id = ?", userID, activityID).Error
	})
	if err != nil {
		return nil, err
	}

	metrics.ResponsesRecorded.WithLabelValues(string(kind)).Inc()
	metrics.ConnectionsUpserted.Add(float64(written))
	log.Debug().Str("activity_id", activityID).Str("user_id", userID).Str("response", string(kind)).
		Int("connections", written).Msg("response recorded")

	s.publish(activityID, EventResponseCreated, saved)
	return &saved, nil
}

// List returns the responses of an activity viewerID can see, newest first.
func (s *ResponseService) List(ctx context.Context, viewerID, activityID string) ([]models.ActivityResponse, error) {
	var a models.Activity
	err := s.db.WithContext(ctx).First(&a, "id = ?", activityID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}

	friends, connections, err := relationSets(ctx, s.store, viewerID)
	if err != nil {
		return nil, err
	}
	if !visibility.CanView(viewerID, &a, friends, connections) {
		return nil, ErrNotFound
	}
	return s.store.GetResponses(ctx, activityID)
}

// Remove deletes userID's response. Removing a response that does not
// exist is not an error, and only an actual deletion is broadcast.
func (s *ResponseService) Remove(ctx context.Context, userID, activityID string) error {
	var a models.Activity
	err := s.db.WithContext(ctx).Preload("Responses").First(&a, "id = ?", activityID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load activity: %w", err)
	}

	friends, connections, err := relationSets(ctx, s.store, userID)
	if err != nil {
		return err
	}
	if !canWithdraw(userID, &a, friends, connections) {
		return ErrNotFound
	}

	res := s.db.WithContext(ctx).
		Where("user_id = ? AND activity_id = ?", userID, activityID).
		Delete(&models.ActivityResponse{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove response: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		s.publish(activityID, EventResponseRemoved, map[string]string{"user_id": userID})
	}
	return nil
}

// canWithdraw reports whether userID may remove their response. Anyone who
// can see the activity may, and so may an existing responder whose view was
// since narrowed by a visibility change.
func canWithdraw(userID string, a *models.Activity, friends, connections visibility.IDSet) bool {
	return visibility.CanView(userID, a, friends, connections) || a.ResponseOf(userID) != nil
}

func (s *ResponseService) publish(activityID, eventType string, payload interface{}) {
	if s.publisher != nil {
		s.publisher.Publish(activityID, eventType, payload)
	}
}

// checkCapacity rejects a new "in" once MaxParticipants responders are in.
// The creator does not take a seat, and changing an existing "in" is free.
func checkCapacity(a *models.Activity, userID string, kind models.ResponseKind) error {
	if kind != models.ResponseIn || a.MaxParticipants == nil || userID == a.CreatorID {
		return nil
	}
	if prev := a.ResponseOf(userID); prev != nil && prev.Response == models.ResponseIn {
		return nil
	}
	if a.InCount() >= *a.MaxParticipants {
		return ErrActivityFull
	}
	return nil
}

func inParticipants(a *models.Activity) []string {
	var ids []string
	for _, r := range a.Responses {
		if r.Response == models.ResponseIn {
			ids = append(ids, r.UserID)
		}
	}
	return ids
}
