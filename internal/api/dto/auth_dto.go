package dto

import (
	"github.com/kintai-system/attendance-api/internal/auth"
	"github.com/kintai-system/attendance-api/internal/domain"
)

// LoginRequest payload for POST /api/auth/login.
type LoginRequest struct {
	EmployeeNumber string `json:"employee_number"`
	Password       string `json:"password"`
	// RememberMe is accepted for client compatibility; token lifetimes do not depend on it.
	RememberMe bool `json:"remember_me"`
}

// Validate returns field errors, or nil when the request is acceptable.
func (r LoginRequest) Validate() map[string]any {
	fields := map[string]any{}
	if domain.ValidateEmployeeNumber(r.EmployeeNumber) != nil {
		fields["employee_number"] = "社員番号は7桁の数字で入力してください"
	}
	if r.Password == "" {
		fields["password"] = "パスワードを入力してください"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// RefreshRequest payload for POST /api/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutRequest is the optional payload for POST /api/auth/logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// PasswordResetRequest payload for POST /api/auth/password/reset.
type PasswordResetRequest struct {
	EmployeeNumber string `json:"employee_number"`
	Email          string `json:"email"`
}

// Validate returns field errors, or nil.
func (r PasswordResetRequest) Validate() map[string]any {
	fields := map[string]any{}
	if r.EmployeeNumber == "" {
		fields["employee_number"] = "社員番号を入力してください"
	}
	if r.Email == "" {
		fields["email"] = "メールアドレスを入力してください"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// PasswordChangeRequest payload for POST /api/auth/password/change.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// MinPasswordLength applies to new passwords.
const MinPasswordLength = 8

// Validate returns field errors, or nil.
func (r PasswordChangeRequest) Validate() map[string]any {
	fields := map[string]any{}
	if r.CurrentPassword == "" {
		fields["current_password"] = "現在のパスワードを入力してください"
	}
	if len([]rune(r.NewPassword)) < MinPasswordLength {
		fields["new_password"] = "新しいパスワードは8文字以上で入力してください"
	}
	if r.ConfirmPassword == "" {
		fields["confirm_password"] = "確認用パスワードを入力してください"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// TokenResponse carries a freshly issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// NewTokenResponse converts a pair into its wire form.
func NewTokenResponse(pair *auth.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
	}
}

// LoginResponse is the data of a successful login.
type LoginResponse struct {
	TokenResponse
	User UserResponse `json:"user"`
}

// MeResponse is the data of GET /api/auth/me.
type MeResponse struct {
	User UserResponse `json:"user"`
}
