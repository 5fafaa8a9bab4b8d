package security

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNumericCodeRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := NumericCode(4)
		require.NoError(t, err)
		require.Len(t, code, 4)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 1000)
		require.LessOrEqual(t, n, 9999)
	}
}

func TestNumericCodeDefaultDigits(t *testing.T) {
	code, err := NumericCode(0)
	require.NoError(t, err)
	require.Len(t, code, 4)
}

func TestNumericCodeSixDigits(t *testing.T) {
	code, err := NumericCode(6)
	require.NoError(t, err)
	require.Len(t, code, 6)
}

func TestOpaqueTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tok := OpaqueToken()
		require.NotEmpty(t, tok)
		require.False(t, seen[tok], "token collision")
		seen[tok] = true
	}
}
