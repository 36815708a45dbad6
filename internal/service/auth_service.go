package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hangout/backend/internal/models"
	"hangout/backend/pkg/jwt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SMSSender delivers verification codes.
type SMSSender interface {
	SendCode(ctx context.Context, phone, code string) error
}

// LogSender writes codes to the log instead of sending them.
type LogSender struct{}

func (LogSender) SendCode(_ context.Context, phone, code string) error {
	log.Info().Str("phone", phone).Str("code", code).Msg("verification code issued")
	return nil
}

type AuthService struct {
	db     *gorm.DB
	codes  *codeBook
	sms    SMSSender
	secret []byte
}

func NewAuthService(db *gorm.DB, codes CodeStore, sms SMSSender, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{db: db, codes: newCodeBook(codes, ttl), sms: sms, secret: secret}
}

// SendCode registers phone on first use and sends it a fresh code.
func (s *AuthService) SendCode(ctx context.Context, phone string) error {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return err
	}

	user := models.User{Phone: normalized, AvailabilityStatus: models.AvailabilityAvailable}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "phone"}}, DoNothing: true}).
		Create(&user).Error
	if err != nil {
		return fmt.Errorf("failed to register phone: %w", err)
	}

	code, err := s.codes.Issue(ctx, normalized)
	if err != nil {
		return err
	}
	if err := s.sms.SendCode(ctx, normalized, code); err != nil {
		return fmt.Errorf("failed to send verification code: %w", err)
	}
	return nil
}

// VerifyCode checks code, marks the user verified and returns a session token.
func (s *AuthService) VerifyCode(ctx context.Context, phone, code string) (*models.User, string, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, "", err
	}
	if err := s.codes.Check(ctx, normalized, code); err != nil {
		return nil, "", err
	}

	var user models.User
	err = s.db.WithContext(ctx).Where("phone = ?", normalized).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", ErrCodeExpired
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}

	if !user.IsVerified {
		if err := s.db.WithContext(ctx).Model(&user).Update("is_verified", true).Error; err != nil {
			return nil, "", fmt.Errorf("failed to verify user: %w", err)
		}
		user.IsVerified = true
	}

	token, err := jwt.GenerateToken(s.secret, user.ID, user.Phone, user.IsVerified)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return &user, token, nil
}

// Me loads the signed-in user.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	return findUser(s.db.WithContext(ctx), userID)
}

func findUser(db *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}
