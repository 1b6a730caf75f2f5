package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"accumulator/internal/backend"
	"accumulator/internal/config"
	"accumulator/internal/models"
)

// Claims represents the gateway session payload.
type Claims struct {
	Email        string `json:"email"`
	Role         string `json:"role"`
	Upstream     string `json:"upstream"`
	Impersonator string `json:"impersonator,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the numeric subject, or 0 when it is not a number.
func (c Claims) UserID() int64 {
	id, _ := strconv.ParseInt(c.Subject, 10, 64)
	return id
}

// IsAdmin reports whether the session holder may administer users.
func (c Claims) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// Backend returns the session to use against the attendance backend.
func (c Claims) Backend() backend.Session {
	return backend.Session{UserID: c.UserID(), Cookie: c.Upstream}
}

// Sessions issues and validates the signed session cookie.
type Sessions struct {
	cfg config.SessionConfig
	now func() time.Time
}

// NewSessions creates a session issuer.
func NewSessions(cfg config.SessionConfig) *Sessions {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return &Sessions{cfg: cfg, now: time.Now}
}

// CookieName is the name of the session cookie.
func (s *Sessions) CookieName() string {
	return s.cfg.CookieName
}

// Issue signs a session for user. impersonator is the email of the admin
// acting as user, or empty.
func (s *Sessions) Issue(user models.User, upstream, impersonator string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.cfg.TTL)
	claims := Claims{
		Email:        user.Email,
		Role:         user.Role,
		Upstream:     upstream,
		Impersonator: impersonator,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.SigningKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// Parse validates a token and returns its claims.
func (s *Sessions) Parse(tokenStr string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.SigningKey), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return Claims{}, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Claims{}, errors.New("invalid token")
	}
	if s.cfg.Issuer != "" && claims.Issuer != s.cfg.Issuer {
		return Claims{}, errors.New("issuer mismatch")
	}
	if claims.Upstream == "" {
		return Claims{}, errors.New("session has no backend cookie")
	}
	return *claims, nil
}
