package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kintai-system/attendance-api/internal/api/dto"
)

// AttendanceHandler serves the time clock endpoints. Records are not persisted yet.
type AttendanceHandler struct{}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler() *AttendanceHandler {
	return &AttendanceHandler{}
}

// ClockStatus handles GET /api/attendance/clock.
func (h *AttendanceHandler) ClockStatus(c *fiber.Ctx) error {
	return c.JSON(dto.OK("打刻状態を取得しました", fiber.Map{
		"status":        "out",
		"last_clock_in": nil,
		"working_time":  0,
	}))
}

// ClockIn handles POST /api/attendance/clock-in.
func (h *AttendanceHandler) ClockIn(c *fiber.Ctx) error {
	return c.JSON(dto.OK("出勤打刻を記録しました", nil))
}

// ClockOut handles POST /api/attendance/clock-out.
func (h *AttendanceHandler) ClockOut(c *fiber.Ctx) error {
	return c.JSON(dto.OK("退勤打刻を記録しました", nil))
}

// History handles GET /api/attendance/history.
func (h *AttendanceHandler) History(c *fiber.Ctx) error {
	return c.JSON(dto.OK("勤怠履歴を取得しました", fiber.Map{"records": []any{}}))
}
