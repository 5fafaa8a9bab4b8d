package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/domain"
)

type bookmarkReq struct {
	OfferRef string `json:"offer_ref"`
}

func AddBookmarkHandler(accounts domain.AccountRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, _ := c.Locals("account_id").(string)
		if uid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error_code": "UNAUTHORIZED",
				"message":    "Требуется авторизация",
			})
		}

		var req bookmarkReq
		if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.OfferRef) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Нужно указать offer_ref",
			})
		}

		if err := accounts.AddBookmark(c.Context(), uid, strings.TrimSpace(req.OfferRef)); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Не удалось сохранить закладку",
			})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Закладка сохранена"})
	}
}

func RemoveBookmarkHandler(accounts domain.AccountRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, _ := c.Locals("account_id").(string)
		if uid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error_code": "UNAUTHORIZED",
				"message":    "Требуется авторизация",
			})
		}

		offerRef := c.Params("offer_ref")
		if offerRef == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Нужно указать offer_ref",
			})
		}

		if err := accounts.RemoveBookmark(c.Context(), uid, offerRef); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Не удалось удалить закладку",
			})
		}
		return c.JSON(fiber.Map{"message": "Закладка удалена"})
	}
}
