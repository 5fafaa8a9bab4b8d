package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/domain"
	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/service"
)

func DeleteDeviceHandler(svc *service.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, _ := c.Locals("account_id").(string)
		if uid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error_code": "UNAUTHORIZED",
				"message":    "Требуется авторизация",
			})
		}

		token := c.Params("token")
		if token == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Нужно указать токен сессии",
			})
		}

		if err := svc.LogoutDevice(c.Context(), uid, token); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error_code": "NOT_FOUND",
					"message":    "Сессия не найдена",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Не удалось завершить сессию",
			})
		}

		return c.JSON(fiber.Map{"message": "Сессия успешно завершена"})
	}
}
