package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kintai-system/attendance-api/internal/auth"
	"github.com/kintai-system/attendance-api/internal/domain"
)

func TestLoginRequestValidate(t *testing.T) {
	assert.Nil(t, LoginRequest{EmployeeNumber: "1000001", Password: "x"}.Validate())

	fields := LoginRequest{EmployeeNumber: "100001", Password: ""}.Validate()
	assert.Contains(t, fields, "employee_number")
	assert.Contains(t, fields, "password")

	assert.Contains(t, LoginRequest{EmployeeNumber: "10000011", Password: "x"}.Validate(), "employee_number")
	assert.Contains(t, LoginRequest{EmployeeNumber: "10000a1", Password: "x"}.Validate(), "employee_number")
	assert.Contains(t, LoginRequest{EmployeeNumber: "１０００００１", Password: "x"}.Validate(), "employee_number")
}

func TestPasswordRequestsValidate(t *testing.T) {
	assert.Nil(t, PasswordResetRequest{EmployeeNumber: "1000001", Email: "a@b.jp"}.Validate())
	assert.Len(t, PasswordResetRequest{}.Validate(), 2)

	assert.Nil(t, PasswordChangeRequest{CurrentPassword: "old", NewPassword: "newpassword", ConfirmPassword: "newpassword"}.Validate())
	assert.Contains(t, PasswordChangeRequest{CurrentPassword: "old", NewPassword: "short", ConfirmPassword: "short"}.Validate(), "new_password")
}

func TestLoginResponseJSON(t *testing.T) {
	dept := "DEV"
	profile := domain.PublicProfile{
		ID: "user_001", EmployeeNumber: "1000001", Name: "山田太郎", Email: "yamada@company.jp",
		Role: domain.RoleGeneral, CompanyCode: "1", DepartmentCode: &dept, IsActive: true,
	}
	resp := LoginResponse{
		TokenResponse: NewTokenResponse(&auth.TokenPair{AccessToken: "a", RefreshToken: "r", TokenType: "bearer", ExpiresIn: 28800}),
		User:          NewUserResponse(profile),
	}

	raw, err := json.Marshal(OK("ログインに成功しました", resp))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, true, decoded["success"])
	assert.NotContains(t, decoded, "errors")

	data := decoded["data"].(map[string]any)
	assert.Equal(t, "a", data["access_token"])
	assert.Equal(t, "bearer", data["token_type"])
	assert.EqualValues(t, 28800, data["expires_in"])

	user := data["user"].(map[string]any)
	assert.Equal(t, "DEV", user["department_code"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "password_hash")
}

func TestUserResponseNullDepartment(t *testing.T) {
	raw, err := json.Marshal(NewUserResponse(domain.PublicProfile{ID: "x"}))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"department_code":null`)
}

func TestFailEnvelope(t *testing.T) {
	raw, err := json.Marshal(Fail("無効なトークンです", nil, "INVALID_TOKEN"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"無効なトークンです","errors":["INVALID_TOKEN"]}`, string(raw))
}
