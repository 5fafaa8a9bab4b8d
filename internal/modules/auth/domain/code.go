package domain

import (
	"context"
	"time"
)

// ResetCode — короткоживущий код сброса пароля / подтверждения email.
// На email живёт максимум одна запись: новый запрос перетирает старую.
type ResetCode struct {
	Email     string
	Code      string
	ExpiresAt time.Time
}

// CodeCache — keyed-хранилище с TTL; проверка истечения — забота вызывающего:
// найденная запись с now > ExpiresAt трактуется как "истекла", а не "нет".
type CodeCache interface {
	Set(ctx context.Context, email, code string, ttl time.Duration) error
	Get(ctx context.Context, email string) (*ResetCode, error)
	// Consume удаляет запись; идемпотентен, если записи нет.
	Consume(ctx context.Context, email string) error
}
