package service

import (
	"context"

	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/domain"
)

// ListDeviceSessions возвращает сессии новыми вперёд; головная — "текущая".
func (s *Service) ListDeviceSessions(ctx context.Context, accountID string) ([]domain.Session, error) {
	return s.accounts.ListSessions(ctx, accountID)
}

// LogoutDevice убирает одну сессию устройства. Уже выданный bearer-токен
// этим не отзывается: его проверка stateless (окно принято осознанно).
func (s *Service) LogoutDevice(ctx context.Context, accountID, sessionToken string) error {
	ok, err := s.accounts.RemoveSession(ctx, accountID, sessionToken)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}
