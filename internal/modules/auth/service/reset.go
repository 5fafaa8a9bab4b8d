package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/domain"
	"github.com/OgbonnaBlessed/velora-sub001/internal/platform/security"
)

type codeKind int

const (
	kindReset codeKind = iota
	kindEmailConfirm
)

// RequestPasswordReset выдаёт код восстановления; новый запрос перетирает старый.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	return s.requestCode(ctx, email, kindReset)
}

// RequestEmailConfirmation отличается от сброса только шаблоном письма.
func (s *Service) RequestEmailConfirmation(ctx context.Context, email string) error {
	return s.requestCode(ctx, email, kindEmailConfirm)
}

func (s *Service) requestCode(ctx context.Context, email string, kind codeKind) error {
	email = strings.ToLower(strings.TrimSpace(email))

	acc, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return err // ErrNotFound
	}

	code, err := security.NumericCode(otpDigits)
	if err != nil {
		return err
	}
	if err := s.codes.Set(ctx, email, code, s.resetTTL); err != nil {
		return err
	}

	// код уже в кеше: при сбое письма клиент может запросить повторно
	if kind == kindEmailConfirm {
		err = s.notifier.SendConfirmCode(ctx, email, acc.FirstName, code)
	} else {
		err = s.notifier.SendResetCode(ctx, email, acc.FirstName, code)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotify, err)
	}
	return nil
}

// VerifyResetCode: в отличие от OTP-регистрации здесь "истёк" и "не тот код"
// различимы — так исторически ведёт себя форма восстановления.
// Код при проверке не гасится: его погасит ResetPassword.
func (s *Service) VerifyResetCode(ctx context.Context, email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	entry, err := s.codes.Get(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrCodeExpired
		}
		return err
	}
	if time.Now().After(entry.ExpiresAt) {
		return domain.ErrCodeExpired
	}
	if entry.Code != code {
		return domain.ErrCodeInvalid
	}
	return nil
}

// ResetPassword ставит новый пароль и гасит запись в кеше кодов.
// Код здесь повторно не проверяется — порядок verify-code → reset-password
// на сервере не принуждается (поведение зафиксировано тестом).
func (s *Service) ResetPassword(ctx context.Context, email, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	acc, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.accounts.UpdatePassword(ctx, acc.ID, hash); err != nil {
		return err
	}
	return s.codes.Consume(ctx, email)
}
