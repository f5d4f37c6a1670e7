package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kintai-system/attendance-api/internal/api/dto"
)

// NotificationsHandler lists notifications for the caller.
type NotificationsHandler struct{}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler() *NotificationsHandler {
	return &NotificationsHandler{}
}

// List handles GET /api/notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.OK("通知一覧を取得しました", fiber.Map{"notifications": []any{}}))
}
