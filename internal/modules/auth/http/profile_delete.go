package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/domain"
	"github.com/OgbonnaBlessed/velora-sub001/internal/platform/security"
)

type deleteReq struct {
	Password string `json:"password"`
}

// Удаление аккаунта подтверждается паролем; вместе с аккаунтом
// неявно исчезают и все его сессии устройств.
func DeleteAccountHandler(accounts domain.AccountRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, _ := c.Locals("account_id").(string)
		if uid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error_code": "UNAUTHORIZED",
				"message":    "Требуется авторизация",
			})
		}

		var req deleteReq
		if err := c.BodyParser(&req); err != nil || req.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Пароль обязателен",
			})
		}

		a, err := accounts.GetByID(c.Context(), uid)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error_code": "NOT_FOUND",
				"message":    "Пользователь не найден",
			})
		case err != nil:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Не удалось загрузить данные",
			})
		}

		if a.PasswordHash == nil || !security.CheckPassword(*a.PasswordHash, req.Password) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_PASSWORD",
				"message":    "Некорректный пароль",
			})
		}

		if err := accounts.Delete(c.Context(), uid); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Не удалось удалить аккаунт",
			})
		}
		return c.JSON(fiber.Map{"message": "Аккаунт успешно удалён"})
	}
}
