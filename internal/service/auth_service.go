package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kintai-system/attendance-api/internal/auth"
	"github.com/kintai-system/attendance-api/internal/domain"
	"github.com/kintai-system/attendance-api/internal/events"
	"github.com/kintai-system/attendance-api/internal/repository"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Profile domain.PublicProfile
	Tokens  *auth.TokenPair
}

// AuthService coordinates login, refresh, identity resolution and logout.
type AuthService struct {
	employees   repository.EmployeeRepository
	issuer      *auth.SessionIssuer
	codec       *auth.TokenCodec
	hasher      *auth.PasswordHasher
	revocations auth.RevocationStore
	rotate      bool
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// AuthDependencies encapsulates collaborators of the auth service.
// Revocations and Dispatcher are optional.
type AuthDependencies struct {
	Employees   repository.EmployeeRepository
	Issuer      *auth.SessionIssuer
	Hasher      *auth.PasswordHasher
	Revocations auth.RevocationStore
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
	// RotateRefreshTokens makes every refresh token single-use. Requires Revocations.
	RotateRefreshTokens bool
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		employees:   deps.Employees,
		issuer:      deps.Issuer,
		codec:       deps.Issuer.Codec(),
		hasher:      deps.Hasher,
		revocations: deps.Revocations,
		rotate:      deps.RotateRefreshTokens && deps.Revocations != nil,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
	}
}

// Login verifies credentials and issues a token pair. Unknown employee numbers
// and wrong passwords both yield auth.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, employeeNumber, password string) (*LoginResult, error) {
	actor := events.Actor{EmployeeNumber: employeeNumber}

	employee, err := s.employees.GetByEmployeeNumber(ctx, employeeNumber)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("lookup employee: %w", err)
		}
		s.hasher.VerifyDummy(password)
		s.publish(ctx, events.EventLoginFailed, actor, events.LoginFailedPayload{Reason: "unknown_employee"})
		return nil, auth.ErrInvalidCredentials
	}

	actor.UserID = employee.ID
	if !s.hasher.Verify(employee.PasswordHash, password) {
		s.publish(ctx, events.EventLoginFailed, actor, events.LoginFailedPayload{Reason: "wrong_password"})
		return nil, auth.ErrInvalidCredentials
	}
	if !employee.IsActive {
		s.publish(ctx, events.EventLoginRejectedDisabled, actor, nil)
		return nil, auth.ErrAccountDisabled
	}

	pair, err := s.issuer.Issue(employee)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventLoginSucceeded, actor, nil)
	return &LoginResult{Profile: employee.Public(), Tokens: pair}, nil
}

// Refresh exchanges a refresh token for a new pair. With rotation enabled the
// presented token is consumed only once the identity has been resolved, and
// presenting it again yields auth.ErrTokenRevoked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.codec.Decode(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Type != domain.TokenTypeRefresh {
		return nil, auth.ErrWrongTokenType
	}
	actor := events.Actor{UserID: claims.UserID, EmployeeNumber: claims.EmployeeNumber}

	if err := s.checkRevoked(ctx, claims); err != nil {
		if errors.Is(err, auth.ErrTokenRevoked) {
			s.publish(ctx, events.EventRefreshTokenReused, actor, events.RefreshTokenReusedPayload{RefreshID: claims.ID})
		}
		return nil, err
	}

	employee, err := s.resolve(ctx, claims)
	if err != nil {
		return nil, err
	}

	if s.rotate {
		// Set-if-absent: of two concurrent refreshes only one gets here with consumed == true.
		consumed, err := s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
		if err != nil {
			return nil, fmt.Errorf("revoke refresh token: %w", err)
		}
		if !consumed {
			s.publish(ctx, events.EventRefreshTokenReused, actor, events.RefreshTokenReusedPayload{RefreshID: claims.ID})
			return nil, auth.ErrTokenRevoked
		}
	}

	pair, err := s.issuer.Issue(employee)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTokenRefreshed, actor, events.TokenRefreshedPayload{
		PreviousRefreshID: claims.ID,
		Rotated:           s.rotate,
	})
	return pair, nil
}

// Authenticate resolves an access token into the calling principal.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*auth.Principal, error) {
	claims, err := s.codec.Decode(accessToken)
	if err != nil {
		return nil, err
	}
	if claims.Type != domain.TokenTypeAccess {
		return nil, auth.ErrWrongTokenType
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}

	employee, err := s.resolve(ctx, claims)
	if err != nil {
		return nil, err
	}
	return &auth.Principal{Claims: claims, Employee: employee}, nil
}

// Me returns the public profile of the access token's owner.
func (s *AuthService) Me(ctx context.Context, accessToken string) (*domain.PublicProfile, error) {
	principal, err := s.Authenticate(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	profile := principal.Employee.Public()
	return &profile, nil
}

// Logout revokes whichever of the given tokens still decode. Tokens that are
// empty, expired or invalid are skipped. It returns how many tokens were revoked.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) (int, error) {
	var actor events.Actor
	revoked := 0
	var errs []error

	for _, token := range []string{accessToken, refreshToken} {
		if token == "" {
			continue
		}
		claims, err := s.codec.Decode(token)
		if err != nil {
			continue
		}
		if actor.UserID == "" {
			actor = events.Actor{UserID: claims.UserID, EmployeeNumber: claims.EmployeeNumber}
		}
		if s.revocations == nil || claims.ID == "" {
			continue
		}
		if _, err := s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
			errs = append(errs, fmt.Errorf("revoke %s token: %w", claims.Type, err))
			continue
		}
		revoked++
	}

	s.publish(ctx, events.EventLoggedOut, actor, events.LoggedOutPayload{RevokedTokens: revoked})
	return revoked, errors.Join(errs...)
}

// RequestPasswordReset is not available yet.
func (s *AuthService) RequestPasswordReset(_ context.Context, _, _ string) error {
	return auth.ErrNotImplemented
}

// ChangePassword is not available yet.
func (s *AuthService) ChangePassword(_ context.Context, _, _ string) error {
	return auth.ErrNotImplemented
}

func (s *AuthService) checkRevoked(ctx context.Context, claims *auth.Claims) error {
	if s.revocations == nil || claims.ID == "" {
		return nil
	}
	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return auth.ErrTokenRevoked
	}
	return nil
}

// resolve reloads the employee so that deletions and deactivations take effect
// before the token expires.
func (s *AuthService) resolve(ctx context.Context, claims *auth.Claims) (*domain.Employee, error) {
	employee, err := s.employees.GetByEmployeeNumber(ctx, claims.EmployeeNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, auth.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("lookup employee: %w", err)
	}
	if !employee.IsActive {
		return nil, auth.ErrAccountDisabled
	}
	return employee, nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, actor events.Actor, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, events.NewEvent(eventType, actor, payload)); err != nil {
		s.logger.Warn("audit event handler failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}
