package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kintai-system/attendance-api/internal/domain"
	apperrors "github.com/kintai-system/attendance-api/pkg/util/errorutil"
)

const principalKey = "auth_principal"

const (
	msgAuthRequired  = "認証が必要です"
	msgInvalidHeader = "認証ヘッダーの形式が正しくありません"
	msgTokenExpired  = "トークンが期限切れです"
	msgTokenInvalid  = "無効なトークンです"
	msgUserNotFound  = "ユーザーが見つかりません"
)

// Principal represents the authenticated caller.
type Principal struct {
	Claims   *Claims
	Employee *domain.Employee
}

// Role returns the role embedded in the access token.
func (p *Principal) Role() domain.Role {
	if p == nil || p.Claims == nil {
		return ""
	}
	return p.Claims.Role
}

// Authenticator resolves an access token into a principal.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*Principal, error)
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	authenticator Authenticator
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(authenticator Authenticator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token, err := BearerToken(c)
	if err != nil {
		return err
	}

	principal, err := m.authenticator.Authenticate(c.UserContext(), token)
	if err != nil {
		return UnauthorizedError(err)
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", apperrors.NewUnauthorized(msgAuthRequired)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperrors.NewUnauthorized(msgInvalidHeader)
	}
	return strings.TrimSpace(parts[1]), nil
}

// UnauthorizedError maps access-token failures to a 401 envelope error.
// Expired tokens get their own code so clients know to refresh.
func UnauthorizedError(err error) error {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return apperrors.NewUnauthorizedCode(apperrors.CodeTokenExpired, msgTokenExpired)
	case IsTokenError(err):
		return apperrors.NewUnauthorizedCode(apperrors.CodeInvalidToken, msgTokenInvalid)
	case errors.Is(err, ErrIdentityNotFound), errors.Is(err, ErrAccountDisabled):
		return apperrors.NewUnauthorized(msgUserNotFound)
	default:
		return apperrors.MapError(err)
	}
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
