package http

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/domain"
	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/service"
)

type resendReq struct {
	Email string `json:"email"`
}

func SignUpResendHandler(svc *service.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req resendReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Некорректные данные",
			})
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_EMAIL",
				"message":    "Некорректный формат email",
			})
		}

		err := svc.ResendOtp(c.Context(), req.Email)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error_code": "NOT_FOUND",
				"message":    "Заявка на регистрацию не найдена",
			})
		case errors.Is(err, service.ErrNotify):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "NOTIFY_FAILED",
				"message":    "Не удалось отправить письмо. Запросите код повторно",
			})
		case err != nil:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Не удалось отправить код",
			})
		}

		return c.JSON(fiber.Map{"message": "Код подтверждения отправлен повторно"})
	}
}
