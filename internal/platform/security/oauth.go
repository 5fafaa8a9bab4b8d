package security

import (
	"errors"
	"fmt"
	"unicode"
)

// OAuthProfile — минимум, который отдаёт провайдер после проверки токена.
type OAuthProfile struct {
	Email       string
	DisplayName string
	AvatarURL   string
}

// VerifyOAuthToken имитирует проверку у стороннего сервиса.
// В реальном проекте нужно дергать API Google/Yandex.
func VerifyOAuthToken(provider, token string) (*OAuthProfile, error) {
	if len(token) < 6 {
		return nil, errors.New("invalid_token")
	}
	// Заглушка: профиль формируется из токена
	return &OAuthProfile{
		Email:       fmt.Sprintf("%s_user_%s@example.com", provider, token[:6]),
		DisplayName: capitalize(provider) + " User",
		AvatarURL:   "",
	}, nil
}

// capitalize поднимает первую руну: имя провайдера — одно слово.
func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
