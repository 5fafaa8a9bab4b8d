package http

import (
	"errors"
	"net/mail"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/domain"
	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/service"
)

type signUpReq struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=50"`
	FirstName string `json:"first_name" validate:"required,min=2,max=50"`
	LastName  string `json:"last_name" validate:"required,min=2,max=50"`
}

var validate = validator.New()

func SignUpHandler(svc *service.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req signUpReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Некорректные данные",
			})
		}

		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "VALIDATION_ERROR",
				"message":    err.Error(),
			})
		}

		// Дополнительно: строгая проверка email
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_EMAIL",
				"message":    "Некорректный формат email",
			})
		}

		err := svc.Signup(c.Context(), req.Email, req.FirstName, req.LastName, req.Password)
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error_code": "EMAIL_TAKEN",
				"message":    "Email уже занят",
			})
		case errors.Is(err, service.ErrNotify):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "NOTIFY_FAILED",
				"message":    "Не удалось отправить письмо. Запросите код повторно",
			})
		case err != nil:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Не удалось зарегистрироваться",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Код подтверждения отправлен на email",
		})
	}
}
