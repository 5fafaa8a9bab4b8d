package domain

import (
	"context"
	"time"
)

// PendingRegistration — заявка на регистрацию до подтверждения кода.
// Существует только между sign-up и успешным verify (или истечением TTL).
type PendingRegistration struct {
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Code         string
	ExpiresAt    time.Time
}

type PendingRepo interface {
	// Save перезаписывает существующую заявку для того же email (идемпотентный повтор).
	Save(ctx context.Context, p PendingRegistration, ttl time.Duration) error
	Get(ctx context.Context, email string) (*PendingRegistration, error)
	// ReplaceCode выдаёт новый код + TTL; ErrNotFound, если заявки нет.
	ReplaceCode(ctx context.Context, email, code string, ttl time.Duration) error
	Delete(ctx context.Context, email string) error
}
