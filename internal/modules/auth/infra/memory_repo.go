package infra

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/domain"
)

// In-memory реализации хранилищ: dev-режим без Postgres/Redis и юнит-тесты.

type memAccountRepo struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account // id -> account
	byEmail  map[string]string          // email -> id
}

func NewMemAccountRepo() domain.AccountRepo {
	return &memAccountRepo{
		accounts: make(map[string]*domain.Account),
		byEmail:  make(map[string]string),
	}
}

func (r *memAccountRepo) Create(_ context.Context, p domain.CreateAccountParams) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email := strings.ToLower(p.Email)
	if _, ok := r.byEmail[email]; ok {
		return nil, domain.ErrEmailTaken
	}
	now := time.Now().UTC()
	a := &domain.Account{
		ID:           uuid.NewString(),
		Email:        email,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		AvatarURL:    p.AvatarURL,
		PasswordHash: p.PasswordHash,
		IsAdmin:      p.IsAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.accounts[a.ID] = a
	r.byEmail[email] = a.ID
	return copyAccount(a), nil
}

func (r *memAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyAccount(r.accounts[id]), nil
}

func (r *memAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyAccount(a), nil
}

func (r *memAccountRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[strings.ToLower(email)]
	return ok, nil
}

func (r *memAccountRepo) UpdatePassword(_ context.Context, id, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.PasswordHash = &newHash
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memAccountRepo) UpdateProfile(_ context.Context, id string, firstName, lastName, avatarURL *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	if firstName != nil {
		a.FirstName = strings.TrimSpace(*firstName)
	}
	if lastName != nil {
		a.LastName = strings.TrimSpace(*lastName)
	}
	if avatarURL != nil {
		a.AvatarURL = *avatarURL
	}
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memAccountRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(r.accounts, id)
	delete(r.byEmail, a.Email)
	return nil
}

// Мутации списка сессий сериализуются общим мьютексом: два конкурентных
// входа не должны потерять друг друга (read-modify-write по слайсу).

func (r *memAccountRepo) AppendSession(_ context.Context, id string, s domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	a.Sessions = append(a.Sessions, s)
	return nil
}

func (r *memAccountRepo) RemoveSession(_ context.Context, id, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	for i, s := range a.Sessions {
		if s.Token == token {
			a.Sessions = append(a.Sessions[:i], a.Sessions[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *memAccountRepo) ListSessions(_ context.Context, id string) ([]domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]domain.Session, len(a.Sessions))
	copy(out, a.Sessions)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memAccountRepo) AddBookmark(_ context.Context, id, offerRef string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	for _, b := range a.Bookmarks {
		if b == offerRef {
			return nil // уже есть
		}
	}
	a.Bookmarks = append(a.Bookmarks, offerRef)
	return nil
}

func (r *memAccountRepo) RemoveBookmark(_ context.Context, id, offerRef string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	for i, b := range a.Bookmarks {
		if b == offerRef {
			a.Bookmarks = append(a.Bookmarks[:i], a.Bookmarks[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memAccountRepo) AddBooking(_ context.Context, id string, b domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	a.Bookings = append(a.Bookings, b)
	cp := b
	return &cp, nil
}

func (r *memAccountRepo) RemoveBooking(_ context.Context, id, bookingID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	for i, b := range a.Bookings {
		if b.ID == bookingID {
			a.Bookings = append(a.Bookings[:i], a.Bookings[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func copyAccount(a *domain.Account) *domain.Account {
	cp := *a
	cp.Sessions = append([]domain.Session(nil), a.Sessions...)
	cp.Bookmarks = append([]string(nil), a.Bookmarks...)
	cp.Bookings = append([]domain.Booking(nil), a.Bookings...)
	return &cp
}

type memPendingRepo struct {
	mu      sync.RWMutex
	pending map[string]*domain.PendingRegistration // email -> заявка
}

func NewMemPendingRepo() domain.PendingRepo {
	return &memPendingRepo{pending: make(map[string]*domain.PendingRegistration)}
}

func (r *memPendingRepo) Save(_ context.Context, p domain.PendingRegistration, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.Email = strings.ToLower(p.Email)
	p.ExpiresAt = time.Now().UTC().Add(ttl)
	cp := p
	r.pending[p.Email] = &cp // last-write-wins, запись целиком под локом
	return nil
}

func (r *memPendingRepo) Get(_ context.Context, email string) (*domain.PendingRegistration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pending[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memPendingRepo) ReplaceCode(_ context.Context, email, code string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pending[strings.ToLower(email)]
	if !ok {
		return domain.ErrNotFound
	}
	p.Code = code
	p.ExpiresAt = time.Now().UTC().Add(ttl)
	return nil
}

func (r *memPendingRepo) Delete(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending, strings.ToLower(email))
	return nil
}

type memCodeCache struct {
	mu    sync.RWMutex
	codes map[string]*domain.ResetCode // email -> код
}

func NewMemCodeCache() domain.CodeCache {
	return &memCodeCache{codes: make(map[string]*domain.ResetCode)}
}

func (r *memCodeCache) Set(_ context.Context, email, code string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	email = strings.ToLower(email)
	r.codes[email] = &domain.ResetCode{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	return nil
}

func (r *memCodeCache) Get(_ context.Context, email string) (*domain.ResetCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.codes[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memCodeCache) Consume(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.codes, strings.ToLower(email))
	return nil
}
