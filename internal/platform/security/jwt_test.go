package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	mgr := NewJWTManager("test-secret", time.Hour, 7*24*time.Hour)

	token, exp, err := mgr.Issue("acc-1", true, false)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := mgr.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "acc-1", claims.AccountID)
	require.True(t, claims.IsAdmin)
}

func TestRememberExtendsTTL(t *testing.T) {
	mgr := NewJWTManager("test-secret", 24*time.Hour, 7*24*time.Hour)

	_, expShort, err := mgr.Issue("acc-1", false, false)
	require.NoError(t, err)
	_, expLong, err := mgr.Issue("acc-1", false, true)
	require.NoError(t, err)

	require.WithinDuration(t, time.Now().Add(24*time.Hour), expShort, 5*time.Second)
	require.WithinDuration(t, time.Now().Add(7*24*time.Hour), expLong, 5*time.Second)
}

func TestVerifyWrongSecret(t *testing.T) {
	mgr := NewJWTManager("secret-a", time.Hour, 0)
	other := NewJWTManager("secret-b", time.Hour, 0)

	token, _, err := mgr.Issue("acc-1", false, false)
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	mgr := NewJWTManager("test-secret", -time.Minute, 0)

	token, _, err := mgr.Issue("acc-1", false, false)
	require.NoError(t, err)

	_, err = mgr.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	mgr := NewJWTManager("test-secret", time.Hour, 0)
	_, err := mgr.Verify("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
