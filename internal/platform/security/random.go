package security

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// NumericCode возвращает n-значный код без ведущих нулей,
// равномерно из [10^(n-1), 10^n). Для n=4 это 1000..9999.
func NumericCode(n int) (string, error) {
	if n <= 0 {
		n = 4
	}
	low := big.NewInt(1)
	for i := 1; i < n; i++ {
		low.Mul(low, big.NewInt(10))
	}
	span := new(big.Int).Mul(low, big.NewInt(9))
	v, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}
	v.Add(v, low)
	return fmt.Sprintf("%d", v), nil
}

// OpaqueToken — непрозрачный токен сессии устройства (128 бит случайности).
func OpaqueToken() string {
	return uuid.NewString()
}
