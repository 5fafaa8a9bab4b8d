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

// PendingRepo держит неподтверждённые заявки в Redis: TTL нативный,
// перезапись — обычный SET (атомарность на ключе гарантирует сам Redis).

type PendingRepo struct {
	rdb    redis.UniversalClient
	prefix string
}

func NewPendingRepo(rdb redis.UniversalClient) *PendingRepo {
	return &PendingRepo{rdb: rdb, prefix: "pending:"}
}

func (r *PendingRepo) key(email string) string {
	return r.prefix + strings.ToLower(email)
}

type pendingDoc struct {
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"password_hash"`
	Code         string    `json:"code"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (r *PendingRepo) Save(ctx context.Context, p domain.PendingRegistration, ttl time.Duration) error {
	doc := pendingDoc{
		Email:        strings.ToLower(p.Email),
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		PasswordHash: p.PasswordHash,
		Code:         p.Code,
		ExpiresAt:    time.Now().UTC().Add(ttl),
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, r.key(p.Email), data, ttl).Err()
}

func (r *PendingRepo) Get(ctx context.Context, email string) (*domain.PendingRegistration, error) {
	data, err := r.rdb.Get(ctx, r.key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var doc pendingDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &domain.PendingRegistration{
		Email:        doc.Email,
		FirstName:    doc.FirstName,
		LastName:     doc.LastName,
		PasswordHash: doc.PasswordHash,
		Code:         doc.Code,
		ExpiresAt:    doc.ExpiresAt,
	}, nil
}

// ReplaceCode перечитывает заявку и кладёт её обратно с новым кодом и TTL.
// Гонка двух resend-ов даёт last-write-wins с консистентной парой код+срок.
func (r *PendingRepo) ReplaceCode(ctx context.Context, email, code string, ttl time.Duration) error {
	p, err := r.Get(ctx, email)
	if err != nil {
		return err
	}
	p.Code = code
	return r.Save(ctx, *p, ttl)
}

func (r *PendingRepo) Delete(ctx context.Context, email string) error {
	return r.rdb.Del(ctx, r.key(email)).Err()
}
