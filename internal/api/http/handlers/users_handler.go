package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kintai-system/attendance-api/internal/api/dto"
)

// UsersHandler exposes employee administration endpoints.
type UsersHandler struct{}

// NewUsersHandler constructs handler.
func NewUsersHandler() *UsersHandler {
	return &UsersHandler{}
}

// List handles GET /api/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.OK("ユーザー一覧を取得しました", dto.UserListResponse{Users: []dto.UserResponse{}}))
}
