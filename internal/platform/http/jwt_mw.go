package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/OgbonnaBlessed/velora-sub001/internal/platform/security"
)

// BearerAuth достаёт токен из HTTP-only cookie (основной путь для браузера)
// или из заголовка Authorization и проверяет его stateless.
func BearerAuth(jwtMgr *security.JWTManager, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(cookieName)
		if tokenStr == "" {
			if h := c.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				tokenStr = strings.TrimPrefix(h, "Bearer ")
			}
		}
		if tokenStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error_code": "UNAUTHORIZED",
				"message":    "Требуется авторизация",
			})
		}

		claims, err := jwtMgr.Verify(tokenStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error_code": "UNAUTHORIZED",
				"message":    "Невалидный или истёкший токен",
			})
		}

		c.Locals("account_id", claims.AccountID)
		c.Locals("is_admin", claims.IsAdmin)
		return c.Next()
	}
}
