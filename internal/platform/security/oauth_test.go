package security

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifyOAuthTokenProfile(t *testing.T) {
	p, err := VerifyOAuthToken("google", "tok-123456")
	require.NoError(t, err)
	require.Equal(t, "Google User", p.DisplayName)
	require.Contains(t, p.Email, "google_user_")
}

func TestVerifyOAuthTokenTooShort(t *testing.T) {
	_, err := VerifyOAuthToken("google", "abc")
	require.Error(t, err)
}

func TestCapitalize(t *testing.T) {
	require.Equal(t, "Yandex", capitalize("yandex"))
	require.Equal(t, "", capitalize(""))
	require.Equal(t, "Ф", capitalize("ф")) // не-ASCII руна
}
