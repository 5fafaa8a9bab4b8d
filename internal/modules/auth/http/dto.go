package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/domain"
)

// accountDTO — представление аккаунта наружу; хеша пароля тут нет по построению
// (сервис отдаёт только Sanitized-копии).
func accountDTO(a *domain.Account) fiber.Map {
	return fiber.Map{
		"user_id":    a.ID,
		"email":      a.Email,
		"first_name": a.FirstName,
		"last_name":  a.LastName,
		"avatar_url": a.AvatarURL,
		"is_admin":   a.IsAdmin,
		"created_at": a.CreatedAt.UTC().Format(time.RFC3339),
	}
}
