package auth

import (
	"errors"
	"net/http"
	"strings"

	"hangout/backend/internal/config"
	"hangout/backend/pkg/jwt"
)

// CookieName is the cookie a browser session token travels in.
const CookieName = "auth-token"

var ErrUnauthenticated = errors.New("authentication required")

// Identity is the authenticated caller.
type Identity struct {
	UserID     string
	Phone      string
	IsVerified bool
}

// Provider resolves the caller of a request.
type Provider interface {
	Authenticate(r *http.Request) (Identity, error)
}

// JWTProvider accepts HS256 session tokens from the Authorization header or
// the session cookie.
type JWTProvider struct {
	Secret []byte
}

func (p JWTProvider) Authenticate(r *http.Request) (Identity, error) {
	token := bearerToken(r)
	if token == "" {
		return Identity{}, ErrUnauthenticated
	}
	claims, err := jwt.ParseToken(p.Secret, token)
	if err != nil {
		return Identity{}, ErrUnauthenticated
	}
	return Identity{UserID: claims.Subject, Phone: claims.Phone, IsVerified: claims.IsVerified}, nil
}

func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// DevProvider authenticates every request as one fixed user. It is only
// used when the server is started with AUTH_MODE=dev.
type DevProvider struct {
	UserID string
}

func (p DevProvider) Authenticate(*http.Request) (Identity, error) {
	if p.UserID == "" {
		return Identity{}, ErrUnauthenticated
	}
	return Identity{UserID: p.UserID, IsVerified: true}, nil
}

// NewProvider picks the provider for cfg.
func NewProvider(cfg *config.Config) Provider {
	if cfg.AuthMode == config.AuthModeDev {
		return DevProvider{UserID: cfg.DevUserID}
	}
	return JWTProvider{Secret: []byte(cfg.JWTSecret)}
}
