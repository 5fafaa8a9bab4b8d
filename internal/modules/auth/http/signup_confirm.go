package http

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/domain"
	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/service"
)

type confirmReq struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func SignUpConfirmHandler(svc *service.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req confirmReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Некорректные данные",
			})
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		req.Code = strings.TrimSpace(req.Code)

		if req.Email == "" || req.Code == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Email и код обязательны",
			})
		}
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_EMAIL",
				"message":    "Некорректный формат email",
			})
		}
		if len(req.Code) != 4 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_CODE",
				"message":    "Некорректный код подтверждения",
			})
		}

		acc, err := svc.VerifyOtp(c.Context(), req.Email, req.Code)
		switch {
		// неверный, истёкший и отсутствующий код наружу неразличимы
		case errors.Is(err, domain.ErrCodeInvalid):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_CODE",
				"message":    "Некорректный или истёкший код подтверждения",
			})
		case errors.Is(err, domain.ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error_code": "EMAIL_TAKEN",
				"message":    "Email уже занят",
			})
		case err != nil:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Не удалось подтвердить email",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Email успешно подтверждён",
			"user":    accountDTO(acc),
		})
	}
}
