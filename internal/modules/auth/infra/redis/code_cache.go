package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/domain"
)

// CodeCache — коды сброса пароля / подтверждения email, максимум один на адрес.

type CodeCache struct {
	rdb    redis.UniversalClient
	prefix string
}

func NewCodeCache(rdb redis.UniversalClient) *CodeCache {
	return &CodeCache{rdb: rdb, prefix: "vcode:"}
}

func (r *CodeCache) key(email string) string {
	return r.prefix + strings.ToLower(email)
}

type codeDoc struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (r *CodeCache) Set(ctx context.Context, email, code string, ttl time.Duration) error {
	data, err := json.Marshal(codeDoc{Code: code, ExpiresAt: time.Now().UTC().Add(ttl)})
	if err != nil {
		return err
	}
	// безусловная перезапись: новый запрос гасит предыдущий код
	return r.rdb.Set(ctx, r.key(email), data, ttl).Err()
}

func (r *CodeCache) Get(ctx context.Context, email string) (*domain.ResetCode, error) {
	data, err := r.rdb.Get(ctx, r.key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var doc codeDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &domain.ResetCode{
		Email:     strings.ToLower(email),
		Code:      doc.Code,
		ExpiresAt: doc.ExpiresAt,
	}, nil
}

func (r *CodeCache) Consume(ctx context.Context, email string) error {
	return r.rdb.Del(ctx, r.key(email)).Err() // DEL отсутствующего ключа — не ошибка
}
