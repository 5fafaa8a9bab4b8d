package http

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/domain"
	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/infra"
)

// outageAccounts имитирует недоступное хранилище на чтении профиля.
type outageAccounts struct {
	domain.AccountRepo
	err error
}

func (r outageAccounts) GetByID(context.Context, string) (*domain.Account, error) {
	return nil, r.err
}

func profileApp(accounts domain.AccountRepo, uid string) *fiber.App {
	app := fiber.New()
	app.Get("/user", func(c *fiber.Ctx) error {
		c.Locals("account_id", uid)
		return c.Next()
	}, GetProfileHandler(accounts))
	return app
}

func TestGetProfileMissingAccountIs404(t *testing.T) {
	app := profileApp(infra.NewMemAccountRepo(), "ghost")

	resp, err := app.Test(httptest.NewRequest("GET", "/user", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetProfileStoreOutageIs500(t *testing.T) {
	repo := outageAccounts{
		AccountRepo: infra.NewMemAccountRepo(),
		err:         errors.New("connection refused"),
	}
	app := profileApp(repo, "acc-1")

	// недоступное хранилище — это 500, а не "пользователь не найден"
	resp, err := app.Test(httptest.NewRequest("GET", "/user", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
