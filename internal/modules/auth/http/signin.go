package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/domain"
	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/service"
)

type signInReq struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

func SignInHandler(svc *service.Service, cookie cookieWriter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req signInReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Некорректные данные",
			})
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		res, err := svc.SignIn(c.Context(), req.Email, req.Password, req.RememberMe, service.Client{
			IP:        c.IP(),
			UserAgent: c.Get("User-Agent"),
		})
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			// единый ответ: не раскрываем, существует ли email
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_CREDENTIALS",
				"message":    "Некорректный email или пароль",
			})
		case err != nil:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Не удалось выполнить вход",
			})
		}

		cookie.write(c, res.Token, res.ExpiresAt)

		return c.JSON(fiber.Map{
			"message":      "Вход успешен",
			"access_token": res.Token,
			"expires_at":   res.ExpiresAt.UTC().Format(time.RFC3339),
			"user":         accountDTO(res.Account),
		})
	}
}
