package security

import "github.com/alexedwards/argon2id"

func HashPassword(pw string) (string, error) {
	return argon2id.CreateHash(pw, argon2id.DefaultParams)
}

// CheckPassword не возвращает ошибку наружу: битый хеш — это просто "не подошло".
func CheckPassword(hash, pw string) bool {
	ok, err := argon2id.ComparePasswordAndHash(pw, hash)
	if err != nil {
		return false
	}
	return ok
}
