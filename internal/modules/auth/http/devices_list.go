package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/service"
)

type deviceDTO struct {
	Token       string `json:"token"`
	DeviceModel string `json:"device_model"`
	Browser     string `json:"browser"`
	OS          string `json:"os"`
	IPAddress   string `json:"ip_address"`
	CreatedAt   string `json:"created_at"`
	IsCurrent   bool   `json:"is_current"`
}

func ListDevicesHandler(svc *service.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, _ := c.Locals("account_id").(string)
		if uid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error_code": "UNAUTHORIZED",
				"message":    "Требуется авторизация",
			})
		}

		items, err := svc.ListDeviceSessions(c.Context(), uid)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Не удалось загрузить данные",
			})
		}

		// список приходит новыми вперёд: головная сессия и есть "текущая"
		out := make([]deviceDTO, 0, len(items))
		for i, s := range items {
			out = append(out, deviceDTO{
				Token:       s.Token,
				DeviceModel: s.DeviceModel,
				Browser:     s.Browser,
				OS:          s.OS,
				IPAddress:   s.IPAddress,
				CreatedAt:   s.CreatedAt.UTC().Format(time.RFC3339),
				IsCurrent:   i == 0,
			})
		}

		return c.JSON(fiber.Map{
			"devices": out,
			"total":   len(out),
		})
	}
}
