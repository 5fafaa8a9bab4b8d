package http

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/domain"
	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/service"
)

type verifyCodeReq struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func VerifyCodeHandler(svc *service.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req verifyCodeReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error_code": "INVALID_FIELDS", "message": "Некорректные данные"})
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		req.Code = strings.TrimSpace(req.Code)

		if _, err := mail.ParseAddress(req.Email); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error_code": "INVALID_EMAIL", "message": "Некорректный формат email"})
		}
		if len(req.Code) != 4 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error_code": "INVALID_CODE", "message": "Некорректный код восстановления"})
		}

		err := svc.VerifyResetCode(c.Context(), req.Email, req.Code)
		switch {
		// здесь "истёк" и "не тот код" различимы — историческое поведение формы
		case errors.Is(err, domain.ErrCodeExpired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error_code": "CODE_EXPIRED", "message": "Код восстановления истёк"})
		case errors.Is(err, domain.ErrCodeInvalid):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error_code": "INVALID_CODE", "message": "Некорректный код восстановления"})
		case err != nil:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error_code": "SERVER_ERROR", "message": "Не удалось проверить код"})
		}

		return c.JSON(fiber.Map{"message": "Код подтверждён"})
	}
}
