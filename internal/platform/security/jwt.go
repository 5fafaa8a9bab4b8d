package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid_token")

// TokenClaims — то, что доверенно извлекается из валидного bearer-токена.
type TokenClaims struct {
	AccountID string
	IsAdmin   bool
}

type JWTManager struct {
	secret      []byte
	accessTTL   time.Duration
	rememberTTL time.Duration
}

func NewJWTManager(secret string, accessTTL, rememberTTL time.Duration) *JWTManager {
	if accessTTL == 0 {
		accessTTL = 24 * time.Hour
	}
	if rememberTTL == 0 {
		rememberTTL = 7 * 24 * time.Hour
	}
	return &JWTManager{secret: []byte(secret), accessTTL: accessTTL, rememberTTL: rememberTTL}
}

// Issue выпускает bearer-токен: 7 дней при remember, иначе 1 день.
func (j *JWTManager) Issue(accountID string, isAdmin, remember bool) (string, time.Time, error) {
	ttl := j.accessTTL
	if remember {
		ttl = j.rememberTTL
	}
	now := time.Now()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub": accountID,
		"adm": isAdmin,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := t.SignedString(j.secret)
	return token, exp, err
}

// Verify — stateless-проверка: подпись + exp. Любая проблема → ErrInvalidToken.
func (j *JWTManager) Verify(tokenStr string) (*TokenClaims, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}
	adm, _ := claims["adm"].(bool)
	return &TokenClaims{AccountID: sub, IsAdmin: adm}, nil
}
