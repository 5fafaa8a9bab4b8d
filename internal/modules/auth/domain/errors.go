package domain

import "errors"

// Семантика ошибок общая для всех реализаций хранилищ (memory/pg/redis).
var (
	ErrNotFound           = errors.New("not_found")
	ErrEmailTaken         = errors.New("email_taken")
	ErrCodeInvalid        = errors.New("code_invalid")
	ErrCodeExpired        = errors.New("code_expired")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)
