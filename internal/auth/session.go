package auth

import (
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kintai-system/attendance-api/internal/domain"
)

const (
	// DefaultAccessTTL matches the 8 hour working day.
	DefaultAccessTTL  = 480 * time.Minute
	DefaultRefreshTTL = 30 * 24 * time.Hour

	// BearerTokenType is reported to clients alongside issued tokens.
	BearerTokenType = "bearer"
)

// TokenPair is the result of one login or refresh cycle.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	TokenType        string
	ExpiresIn        int64
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
	AccessID         string
	RefreshID        string
}

// SessionIssuer mints access/refresh token pairs for an employee.
type SessionIssuer struct {
	codec      *TokenCodec
	accessTTL  time.Duration
	refreshTTL time.Duration
	newID      func() string
}

// NewSessionIssuer builds an issuer; non-positive TTLs fall back to the defaults.
func NewSessionIssuer(codec *TokenCodec, accessTTL, refreshTTL time.Duration) *SessionIssuer {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &SessionIssuer{
		codec:      codec,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		newID:      uuid.NewString,
	}
}

// AccessTTL returns the configured access token lifetime.
func (s *SessionIssuer) AccessTTL() time.Duration {
	return s.accessTTL
}

// Codec exposes the codec used for signing.
func (s *SessionIssuer) Codec() *TokenCodec {
	return s.codec
}

// Issue builds and signs both tokens for the employee.
func (s *SessionIssuer) Issue(employee *domain.Employee) (*TokenPair, error) {
	now := s.codec.Now()

	access := s.claims(employee, domain.TokenTypeAccess, now, s.accessTTL)
	access.Role = employee.Role
	accessToken, err := s.codec.Encode(access)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	refresh := s.claims(employee, domain.TokenTypeRefresh, now, s.refreshTTL)
	refreshToken, err := s.codec.Encode(refresh)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        BearerTokenType,
		ExpiresIn:        int64(s.accessTTL.Seconds()),
		AccessExpiresAt:  access.ExpiresAt.Time,
		RefreshExpiresAt: refresh.ExpiresAt.Time,
		AccessID:         access.ID,
		RefreshID:        refresh.ID,
	}, nil
}

func (s *SessionIssuer) claims(employee *domain.Employee, typ domain.TokenType, now time.Time, ttl time.Duration) *Claims {
	return &Claims{
		UserID:         employee.ID,
		EmployeeNumber: employee.EmployeeNumber,
		Type:           typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.newID(),
			Subject:   employee.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}
