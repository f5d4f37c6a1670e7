package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kintai-system/attendance-api/internal/api/dto"
)

// ReportsHandler lists attendance reports.
type ReportsHandler struct{}

// NewReportsHandler constructs handler.
func NewReportsHandler() *ReportsHandler {
	return &ReportsHandler{}
}

// List handles GET /api/reports.
func (h *ReportsHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.OK("レポート一覧を取得しました", fiber.Map{"reports": []any{}}))
}
