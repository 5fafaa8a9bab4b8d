package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/service"
	"github.com/OgbonnaBlessed/velora-sub001/internal/platform/security"
)

type oauthReq struct {
	AccessToken string `json:"access_token"`
}

func OAuthSignInHandler(svc *service.Service, cookie cookieWriter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		provider := strings.ToLower(c.Params("provider"))
		if provider == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_PROVIDER",
				"message":    "Не указан провайдер",
			})
		}

		var req oauthReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Некорректные данные",
			})
		}

		profile, err := security.VerifyOAuthToken(provider, req.AccessToken)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_TOKEN",
				"message":    "Некорректный OAuth-токен",
			})
		}

		res, err := svc.FederatedSignIn(c.Context(), profile.Email, profile.DisplayName, profile.AvatarURL, service.Client{
			IP:        c.IP(),
			UserAgent: c.Get("User-Agent"),
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Не удалось выполнить вход через провайдера",
			})
		}

		cookie.write(c, res.Token, res.ExpiresAt)

		return c.JSON(fiber.Map{
			"message":      "Вход через провайдера успешен",
			"access_token": res.Token,
			"expires_at":   res.ExpiresAt.UTC().Format(time.RFC3339),
			"user":         accountDTO(res.Account),
		})
	}
}
