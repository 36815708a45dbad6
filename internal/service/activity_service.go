package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hangout/backend/internal/models"
	"hangout/backend/internal/timing"
	"hangout/backend/internal/visibility"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityInput is the content of a new activity. Nil fields are unset.
type ActivityInput struct {
	Title           string
	Description     *string
	Location        *string
	Date            *time.Time
	Time            *string
	Timeframe       *string
	Category        *models.Category
	Visibility      *models.Visibility
	MaxParticipants *int
}

// ActivityPatch changes the given fields of an existing activity.
type ActivityPatch struct {
	Title           *string
	Description     *string
	Location        *string
	Date            *time.Time
	Time            *string
	Timeframe       *string
	Category        *models.Category
	Visibility      *models.Visibility
	MaxParticipants *int
}

type ActivityService struct {
	db        *gorm.DB
	relations Relations
	now       func() time.Time
}

func NewActivityService(db *gorm.DB, relations Relations, now func() time.Time) *ActivityService {
	if now == nil {
		now = time.Now
	}
	return &ActivityService{db: db, relations: relations, now: now}
}

// BuildActivity validates input and fills in defaults. When no category is
// given it is inferred from the timing fields.
func BuildActivity(creatorID string, in ActivityInput, now time.Time) (*models.Activity, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	a := &models.Activity{
		Title:           title,
		Description:     in.Description,
		Location:        in.Location,
		Time:            in.Time,
		Timeframe:       in.Timeframe,
		Visibility:      models.VisibilityFriends,
		MaxParticipants: in.MaxParticipants,
		CreatorID:       creatorID,
	}
	if in.Date != nil {
		d := datatypes.Date(*in.Date)
		a.Date = &d
	}
	if in.Visibility != nil {
		a.Visibility = *in.Visibility
	}
	if in.Category != nil {
		a.Category = *in.Category
	} else {
		a.Category = models.Category(timing.InferCategory(TimingInput(*a), now))
	}

	if err := validateActivity(a); err != nil {
		return nil, err
	}
	return a, nil
}

func validateActivity(a *models.Activity) error {
	if !a.Category.Valid() {
		return fmt.Errorf("%w: category must be spontaneous or planned", ErrInvalidInput)
	}
	if !a.Visibility.Valid() {
		return fmt.Errorf("%w: visibility must be friends, previous or open", ErrInvalidInput)
	}
	if a.MaxParticipants != nil && *a.MaxParticipants < 1 {
		return fmt.Errorf("%w: maxParticipants must be at least 1", ErrInvalidInput)
	}
	if a.Time != nil && *a.Time != "" {
		if _, _, ok := timing.ParseClock(*a.Time); !ok {
			return fmt.Errorf("%w: time must be HH:MM", ErrInvalidInput)
		}
	}
	return nil
}

// ApplyPatch copies the set fields of p onto a and revalidates.
func ApplyPatch(a *models.Activity, p ActivityPatch) error {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		a.Title = title
	}
	if p.Description != nil {
		a.Description = p.Description
	}
	if p.Location != nil {
		a.Location = p.Location
	}
	if p.Date != nil {
		d := datatypes.Date(*p.Date)
		a.Date = &d
	}
	if p.Time != nil {
		a.Time = p.Time
	}
	if p.Timeframe != nil {
		a.Timeframe = p.Timeframe
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.Visibility != nil {
		a.Visibility = *p.Visibility
	}
	if p.MaxParticipants != nil {
		a.MaxParticipants = p.MaxParticipants
	}
	return validateActivity(a)
}

// Create stores a new activity owned by creatorID.
func (s *ActivityService) Create(ctx context.Context, creatorID string, in ActivityInput) (*models.Activity, error) {
	a, err := BuildActivity(creatorID, in, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	return s.load(ctx, a.ID)
}

// Get returns the activity if viewerID may see it. Activities the viewer
// may not see are reported as not found.
func (s *ActivityService) Get(ctx context.Context, viewerID, id string) (*models.Activity, error) {
	a, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.CreatorID == viewerID || a.Visibility == models.VisibilityOpen {
		return a, nil
	}

	friends, connections, err := relationSets(ctx, s.relations, viewerID)
	if err != nil {
		return nil, err
	}
	if !visibility.CanView(viewerID, a, friends, connections) {
		return nil, ErrNotFound
	}
	return a, nil
}

// Update changes an activity. Only its creator may do so.
func (s *ActivityService) Update(ctx context.Context, userID, id string, p ActivityPatch) (*models.Activity, error) {
	a, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := ApplyPatch(a, p); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Omit("Creator", "Responses").Save(a).Error; err != nil {
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}
	return s.load(ctx, id)
}

// Complete marks an activity as finished so it is always classified as past.
func (s *ActivityService) Complete(ctx context.Context, userID, id string) (*models.Activity, error) {
	a, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if a.CompletedAt == nil {
		if err := s.db.WithContext(ctx).Model(a).Update("completed_at", s.now()).Error; err != nil {
			return nil, fmt.Errorf("failed to complete activity: %w", err)
		}
	}
	return s.load(ctx, id)
}

// Delete removes an activity and its responses. Only its creator may do so.
func (s *ActivityService) Delete(ctx context.Context, userID, id string) error {
	a, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("activity_id = ?", a.ID).Delete(&models.ActivityResponse{}).Error; err != nil {
			return fmt.Errorf("failed to delete responses: %w", err)
		}
		if err := tx.Delete(&models.Activity{}, "id = ?", a.ID).Error; err != nil {
			return fmt.Errorf("failed to delete activity: %w", err)
		}
		return nil
	})
}

func (s *ActivityService) owned(ctx context.Context, userID, id string) (*models.Activity, error) {
	var a models.Activity
	if err := s.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}
	if a.CreatorID != userID {
		return nil, ErrForbidden
	}
	return &a, nil
}

func (s *ActivityService) load(ctx context.Context, id string) (*models.Activity, error) {
	var a models.Activity
	err := s.db.WithContext(ctx).
		Preload("Creator").
		Preload("Responses", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Responses.User").
		First(&a, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}
	return &a, nil
}
