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

// Signup стадирует регистрацию: аккаунт НЕ создаётся до подтверждения кода.
// Повторный signup на тот же email молча перетирает прежнюю заявку —
// наружу не видно, была ли она (кроме явного конфликта с готовым аккаунтом).
func (s *Service) Signup(ctx context.Context, email, firstName, lastName, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	exists, err := s.accounts.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrEmailTaken
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}
	code, err := security.NumericCode(otpDigits)
	if err != nil {
		return err
	}

	if err := s.pending.Save(ctx, domain.PendingRegistration{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
		Code:         code,
	}, s.otpTTL); err != nil {
		return err
	}

	// заявка уже записана: если письмо не ушло, её спасает resend
	if err := s.notifier.SendSignupCode(ctx, email, firstName, code); err != nil {
		return fmt.Errorf("%w: %v", ErrNotify, err)
	}
	return nil
}

// VerifyOtp — единственный путь создания аккаунта из регистрации.
// Отсутствие заявки, неверный код и истёкший срок намеренно неразличимы.
func (s *Service) VerifyOtp(ctx context.Context, email, code string) (*domain.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	p, err := s.pending.Get(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCodeInvalid
		}
		return nil, err
	}
	if p.Code != code || time.Now().After(p.ExpiresAt) {
		return nil, domain.ErrCodeInvalid
	}

	hash := p.PasswordHash
	acc, err := s.accounts.Create(ctx, domain.CreateAccountParams{
		Email:        email,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		PasswordHash: &hash,
	})
	if err != nil {
		return nil, err
	}

	if err := s.pending.Delete(ctx, email); err != nil {
		return nil, err
	}
	return acc.Sanitized(), nil
}

// ResendOtp выпускает свежий код, прежний перестаёт действовать.
func (s *Service) ResendOtp(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	p, err := s.pending.Get(ctx, email)
	if err != nil {
		return err // ErrNotFound, если заявки нет
	}

	code, err := security.NumericCode(otpDigits)
	if err != nil {
		return err
	}
	if err := s.pending.ReplaceCode(ctx, email, code, s.otpTTL); err != nil {
		return err
	}

	if err := s.notifier.SendSignupCode(ctx, email, p.FirstName, code); err != nil {
		return fmt.Errorf("%w: %v", ErrNotify, err)
	}
	return nil
}
