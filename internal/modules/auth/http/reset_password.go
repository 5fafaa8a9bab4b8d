package http

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/domain"
	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/service"
)

type resetReq struct {
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

func ResetPasswordHandler(svc *service.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req resetReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error_code": "INVALID_FIELDS", "message": "Некорректные данные"})
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		if _, err := mail.ParseAddress(req.Email); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error_code": "INVALID_EMAIL", "message": "Некорректный формат email"})
		}
		if len(req.NewPassword) < 8 || len(req.NewPassword) > 50 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error_code": "INVALID_PASSWORD", "message": "Пароль должен быть от 8 до 50 символов"})
		}

		err := svc.ResetPassword(c.Context(), req.Email, req.NewPassword)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error_code": "NOT_FOUND", "message": "Пользователь не найден"})
		case err != nil:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error_code": "SERVER_ERROR", "message": "Не удалось сбросить пароль"})
		}

		return c.JSON(fiber.Map{"message": "Пароль успешно сброшен"})
	}
}
