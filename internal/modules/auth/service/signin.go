package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/domain"
	"github.com/OgbonnaBlessed/velora-sub001/internal/platform/security"
)

// SignInResult — bearer-токен плюс очищенный аккаунт.
type SignInResult struct {
	Token     string
	ExpiresAt time.Time
	Account   *domain.Account
}

// SignIn: единый ответ "неверный email или пароль" вне зависимости от того,
// что именно не совпало — никакой энумерации адресов.
func (s *Service) SignIn(ctx context.Context, email, password string, remember bool, client Client) (*SignInResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	acc, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		// маскируется только "нет такого аккаунта"; сбой хранилища — не 400
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	// у OAuth-аккаунтов локального пароля нет
	if acc.PasswordHash == nil || !security.CheckPassword(*acc.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(acc.ID, acc.IsAdmin, remember)
	if err != nil {
		return nil, err
	}

	if err := s.recordSession(ctx, acc.ID, client); err != nil {
		return nil, err
	}

	return &SignInResult{Token: token, ExpiresAt: exp, Account: acc.Sanitized()}, nil
}

// FederatedSignIn: провижининг по данным провайдера. Пароль — случайный
// и никому не сообщается: такие аккаунты локально по паролю не входят.
func (s *Service) FederatedSignIn(ctx context.Context, email, displayName, avatarURL string, client Client) (*SignInResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	acc, err := s.accounts.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		first, last := splitDisplayName(displayName)
		hash, herr := security.HashPassword(security.OpaqueToken() + security.OpaqueToken())
		if herr != nil {
			return nil, herr
		}
		if avatarURL == "" {
			avatarURL = defaultAvatarURL
		}
		acc, err = s.accounts.Create(ctx, domain.CreateAccountParams{
			Email:        email,
			FirstName:    first,
			LastName:     last,
			AvatarURL:    avatarURL,
			PasswordHash: &hash,
		})
		if err != nil {
			return nil, err
		}
	case err != nil:
		// сбой хранилища: провижинить вслепую нельзя
		return nil, err
	}

	// для OAuth-входа remember-ветки нет: всегда короткий TTL
	token, exp, err := s.tokens.Issue(acc.ID, acc.IsAdmin, false)
	if err != nil {
		return nil, err
	}
	if err := s.recordSession(ctx, acc.ID, client); err != nil {
		return nil, err
	}
	return &SignInResult{Token: token, ExpiresAt: exp, Account: acc.Sanitized()}, nil
}

const defaultAvatarURL = "https://cdn.velora.app/avatars/default.png"

func (s *Service) recordSession(ctx context.Context, accountID string, client Client) error {
	info := s.devices.Classify(client.UserAgent)
	return s.accounts.AppendSession(ctx, accountID, domain.Session{
		Token:       security.OpaqueToken(),
		DeviceModel: info.Model,
		Browser:     info.Browser,
		OS:          info.OS,
		IPAddress:   client.IP,
		CreatedAt:   time.Now().UTC(),
	})
}

func splitDisplayName(name string) (first, last string) {
	parts := strings.Fields(strings.TrimSpace(name))
	switch {
	case len(parts) == 0:
		return "Velora", "Traveler"
	case len(parts) == 1:
		return parts[0], parts[0]
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
