package handlers

import (
	"errors"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/kintai-system/attendance-api/internal/api/dto"
	"github.com/kintai-system/attendance-api/internal/auth"
	"github.com/kintai-system/attendance-api/internal/ratelimit"
	"github.com/kintai-system/attendance-api/internal/service"
	apperrors "github.com/kintai-system/attendance-api/pkg/util/errorutil"
)

const (
	msgLoginSucceeded        = "ログインに成功しました"
	msgInvalidCredentials    = "社員番号またはパスワードが正しくありません"
	msgAccountDisabled       = "アカウントが無効です"
	msgTooManyAttempts       = "ログイン試行回数の上限に達しました。しばらくしてから再度お試しください"
	msgTokenRefreshed        = "トークンを更新しました"
	msgRefreshTokenExpired   = "リフレッシュトークンが期限切れです"
	msgRefreshTokenInvalid   = "無効なリフレッシュトークンです"
	msgUserNotFound          = "ユーザーが見つかりません"
	msgLoggedOut             = "ログアウトしました"
	msgMeRetrieved           = "ユーザー情報を取得しました"
	msgPasswordResetPending  = "パスワードリセット機能は現在開発中です"
	msgPasswordChangePending = "パスワード変更機能は現在開発中です"
	msgInvalidPayload        = "リクエストの形式が正しくありません"
	msgValidationFailed      = "入力内容に誤りがあります"
)

// AuthHandler exposes the /api/auth endpoints.
type AuthHandler struct {
	auth     *service.AuthService
	throttle *ratelimit.LoginThrottle
	logger   *zap.Logger
}

// NewAuthHandler constructs handler. throttle may be nil to disable login throttling.
func NewAuthHandler(authService *service.AuthService, throttle *ratelimit.LoginThrottle, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{auth: authService, throttle: throttle, logger: logger}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(msgInvalidPayload, nil)
	}
	if fields := req.Validate(); fields != nil {
		return apperrors.NewValidationError(msgValidationFailed, map[string]any{"fields": fields})
	}

	if err := h.checkThrottle(c, req.EmployeeNumber); err != nil {
		return err
	}

	result, err := h.auth.Login(c.UserContext(), req.EmployeeNumber, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return apperrors.NewUnauthorizedCode(apperrors.CodeInvalidCredentials, msgInvalidCredentials)
		case errors.Is(err, auth.ErrAccountDisabled):
			return apperrors.NewForbiddenCode(apperrors.CodeAccountDisabled, msgAccountDisabled)
		default:
			return apperrors.NewInternalError(err)
		}
	}

	return c.JSON(dto.OK(msgLoginSucceeded, dto.LoginResponse{
		TokenResponse: dto.NewTokenResponse(result.Tokens),
		User:          dto.NewUserResponse(result.Profile),
	}))
}

func (h *AuthHandler) checkThrottle(c *fiber.Ctx, employeeNumber string) error {
	if h.throttle == nil {
		return nil
	}
	res, err := h.throttle.Allow(c.UserContext(), c.IP(), employeeNumber)
	if err != nil {
		h.logger.Warn("login rate limiter unavailable", zap.Error(err))
		return nil
	}
	if res.Allowed {
		return nil
	}

	retryAfter := int(math.Ceil(res.RetryAfter.Seconds()))
	if retryAfter < 1 {
		retryAfter = 1
	}
	c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
	return apperrors.NewTooManyRequests(msgTooManyAttempts, map[string]any{"retry_after": retryAfter})
}

// Refresh handles POST /api/auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(msgInvalidPayload, nil)
	}
	if req.RefreshToken == "" {
		return apperrors.NewValidationError(msgValidationFailed, map[string]any{
			"fields": map[string]any{"refresh_token": "リフレッシュトークンを入力してください"},
		})
	}

	pair, err := h.auth.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrTokenExpired):
			return apperrors.NewUnauthorizedCode(apperrors.CodeTokenExpired, msgRefreshTokenExpired)
		case auth.IsTokenError(err):
			return apperrors.NewUnauthorizedCode(apperrors.CodeInvalidToken, msgRefreshTokenInvalid)
		case errors.Is(err, auth.ErrIdentityNotFound), errors.Is(err, auth.ErrAccountDisabled):
			return apperrors.NewUnauthorized(msgUserNotFound)
		default:
			return apperrors.NewInternalError(err)
		}
	}

	return c.JSON(dto.OK(msgTokenRefreshed, dto.NewTokenResponse(pair)))
}

// Logout handles POST /api/auth/logout. It always succeeds.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	accessToken, _ := auth.BearerToken(c)

	var req dto.LogoutRequest
	if len(c.Body()) > 0 {
		_ = c.BodyParser(&req)
	}

	if _, err := h.auth.Logout(c.UserContext(), accessToken, req.RefreshToken); err != nil {
		h.logger.Warn("token revocation failed during logout", zap.Error(err))
	}
	return c.JSON(dto.OK(msgLoggedOut, nil))
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	token, err := auth.BearerToken(c)
	if err != nil {
		return err
	}
	profile, err := h.auth.Me(c.UserContext(), token)
	if err != nil {
		return auth.UnauthorizedError(err)
	}
	return c.JSON(dto.OK(msgMeRetrieved, dto.MeResponse{
		User: dto.NewUserResponse(*profile),
	}))
}

// RequestPasswordReset handles POST /api/auth/password/reset.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(msgInvalidPayload, nil)
	}
	if fields := req.Validate(); fields != nil {
		return apperrors.NewValidationError(msgValidationFailed, map[string]any{"fields": fields})
	}

	err := h.auth.RequestPasswordReset(c.UserContext(), req.EmployeeNumber, req.Email)
	return notImplemented(err, msgPasswordResetPending)
}

// ChangePassword handles POST /api/auth/password/change.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(msgInvalidPayload, nil)
	}
	if fields := req.Validate(); fields != nil {
		return apperrors.NewValidationError(msgValidationFailed, map[string]any{"fields": fields})
	}

	err := h.auth.ChangePassword(c.UserContext(), req.CurrentPassword, req.NewPassword)
	return notImplemented(err, msgPasswordChangePending)
}

func notImplemented(err error, message string) error {
	if errors.Is(err, auth.ErrNotImplemented) {
		return apperrors.NewNotImplemented(message)
	}
	return apperrors.MapError(err)
}
