package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "domain error passes through",
			err:        NewUnauthorizedCode(CodeTokenExpired, "expired"),
			wantCode:   CodeTokenExpired,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "expired",
		},
		{
			name:       "wrapped domain error",
			err:        fmt.Errorf("login: %w", NewForbiddenCode(CodeAccountDisabled, "disabled")),
			wantCode:   CodeAccountDisabled,
			wantStatus: http.StatusForbidden,
			wantMsg:    "disabled",
		},
		{
			name:       "fiber forbidden",
			err:        fiber.NewError(http.StatusForbidden, "insufficient role"),
			wantCode:   CodeForbidden,
			wantStatus: http.StatusForbidden,
			wantMsg:    "insufficient role",
		},
		{
			name:       "fiber not found",
			err:        fiber.ErrNotFound,
			wantCode:   CodeNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    fiber.ErrNotFound.Message,
		},
		{
			name:       "plain error becomes internal",
			err:        errors.New("boom"),
			wantCode:   CodeInternal,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantStatus, got.HTTPStatus)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}

	assert.Nil(t, ToDomainError(nil))
}

func TestInternalErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestMapErrorKeepsNil(t *testing.T) {
	assert.NoError(t, MapError(nil))

	err := MapError(errors.New("boom"))
	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, CodeInternal, de.Code)
}
