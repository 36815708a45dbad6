package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// CodeLength is the number of digits in a verification code.
const CodeLength = 6

// CodeStore keeps hashed verification codes until they expire.
type CodeStore interface {
	Save(ctx context.Context, phone, hash string, ttl time.Duration) error
	// Load returns ErrCodeExpired when no code is stored for phone.
	Load(ctx context.Context, phone string) (string, error)
	Delete(ctx context.Context, phone string) error
}

type RedisCodeStore struct {
	rdb *redis.Client
}

func NewRedisCodeStore(rdb *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{rdb: rdb}
}

func codeKey(phone string) string {
	return "otp:" + phone
}

func (s *RedisCodeStore) Save(ctx context.Context, phone, hash string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, codeKey(phone), hash, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}
	return nil
}

func (s *RedisCodeStore) Load(ctx context.Context, phone string) (string, error) {
	hash, err := s.rdb.Get(ctx, codeKey(phone)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeExpired
	}
	if err != nil {
		return "", fmt.Errorf("failed to load verification code: %w", err)
	}
	return hash, nil
}

func (s *RedisCodeStore) Delete(ctx context.Context, phone string) error {
	return s.rdb.Del(ctx, codeKey(phone)).Err()
}

// codeBook issues and checks one-time codes. Only bcrypt hashes are stored.
type codeBook struct {
	store CodeStore
	ttl   time.Duration
	cost  int
}

func newCodeBook(store CodeStore, ttl time.Duration) *codeBook {
	return &codeBook{store: store, ttl: ttl, cost: bcrypt.DefaultCost}
}

// Issue generates and stores a fresh code for phone, replacing any earlier one.
func (b *codeBook) Issue(ctx context.Context, phone string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash verification code: %w", err)
	}
	if err := b.store.Save(ctx, phone, string(hash), b.ttl); err != nil {
		return "", err
	}
	return code, nil
}

// Check consumes the stored code when code matches it.
func (b *codeBook) Check(ctx context.Context, phone, code string) error {
	hash, err := b.store.Load(ctx, phone)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
		return ErrInvalidCode
	}
	return b.store.Delete(ctx, phone)
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%0*d", CodeLength, n.Int64()), nil
}
