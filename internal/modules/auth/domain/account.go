package domain

import (
	"context"
	"time"
)

// Account — подтверждённый пользователь. Создаётся только через verify-otp
// или через OAuth-провижининг; на этапе pending-регистрации аккаунта ещё нет.
type Account struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	AvatarURL    string
	PasswordHash *string
	IsAdmin      bool
	Bookmarks    []string
	Bookings     []Booking
	Sessions     []Session
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Booking — ссылка на бронирование (сам travel-домен живёт в другом сервисе).
type Booking struct {
	ID        string
	OfferRef  string
	Kind      string // flight | hotel | car
	CreatedAt time.Time
}

// Sanitized возвращает копию без хеша пароля — только она уходит наружу.
func (a *Account) Sanitized() *Account {
	cp := *a
	cp.PasswordHash = nil
	return &cp
}

type CreateAccountParams struct {
	Email        string
	FirstName    string
	LastName     string
	AvatarURL    string
	PasswordHash *string
	IsAdmin      bool
}

type AccountRepo interface {
	Create(ctx context.Context, p CreateAccountParams) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id, newHash string) error
	UpdateProfile(ctx context.Context, id string, firstName, lastName, avatarURL *string) error
	Delete(ctx context.Context, id string) error

	// сессии устройств (владение — у аккаунта)
	AppendSession(ctx context.Context, id string, s Session) error
	RemoveSession(ctx context.Context, id, token string) (bool, error)
	ListSessions(ctx context.Context, id string) ([]Session, error) // новые первыми

	// закладки и брони
	AddBookmark(ctx context.Context, id, offerRef string) error
	RemoveBookmark(ctx context.Context, id, offerRef string) error
	AddBooking(ctx context.Context, id string, b Booking) (*Booking, error)
	RemoveBooking(ctx context.Context, id, bookingID string) (bool, error)
}
