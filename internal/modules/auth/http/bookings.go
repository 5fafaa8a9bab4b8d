package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/domain"
)

type bookingReq struct {
	OfferRef string `json:"offer_ref"`
	Kind     string `json:"kind"` // flight | hotel | car
}

func AddBookingHandler(accounts domain.AccountRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, _ := c.Locals("account_id").(string)
		if uid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error_code": "UNAUTHORIZED",
				"message":    "Требуется авторизация",
			})
		}

		var req bookingReq
		if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.OfferRef) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Нужно указать offer_ref",
			})
		}
		switch req.Kind {
		case "flight", "hotel", "car":
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "kind должен быть flight, hotel или car",
			})
		}

		b, err := accounts.AddBooking(c.Context(), uid, domain.Booking{
			OfferRef: strings.TrimSpace(req.OfferRef),
			Kind:     req.Kind,
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Не удалось создать бронь",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Бронь создана",
			"booking": fiber.Map{
				"id":         b.ID,
				"offer_ref":  b.OfferRef,
				"kind":       b.Kind,
				"created_at": b.CreatedAt.UTC().Format(time.RFC3339),
			},
		})
	}
}

func RemoveBookingHandler(accounts domain.AccountRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, _ := c.Locals("account_id").(string)
		if uid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error_code": "UNAUTHORIZED",
				"message":    "Требуется авторизация",
			})
		}

		bookingID := c.Params("booking_id")
		if bookingID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Нужно указать booking_id",
			})
		}

		ok, err := accounts.RemoveBooking(c.Context(), uid, bookingID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Не удалось отменить бронь",
			})
		}
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error_code": "NOT_FOUND",
				"message":    "Бронь не найдена",
			})
		}
		return c.JSON(fiber.Map{"message": "Бронь отменена"})
	}
}
