package pg

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/domain"
)

type AccountRepo struct{ db *pgxpool.Pool }

func NewAccountRepo(db *pgxpool.Pool) *AccountRepo { return &AccountRepo{db: db} }

func scanAccount(row interface {
	Scan(dest ...any) error
}) (*domain.Account, error) {
	var a domain.Account
	var pw *string
	var created, updated time.Time
	if err := row.Scan(&a.ID, &a.Email, &a.FirstName, &a.LastName, &a.AvatarURL,
		&pw, &a.IsAdmin, &created, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	a.PasswordHash = pw
	a.CreatedAt = created
	a.UpdatedAt = updated
	return &a, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *AccountRepo) Create(ctx context.Context, p domain.CreateAccountParams) (*domain.Account, error) {
	q := `
INSERT INTO accounts (email, first_name, last_name, avatar_url, password_hash, is_admin)
VALUES (LOWER($1), $2, $3, $4, $5, $6)
RETURNING id, email, first_name, last_name, avatar_url, password_hash, is_admin, created_at, updated_at`
	row := r.db.QueryRow(ctx, q, p.Email, p.FirstName, p.LastName, p.AvatarURL, p.PasswordHash, p.IsAdmin)
	a, err := scanAccount(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return a, nil
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	q := `SELECT id, email, first_name, last_name, avatar_url, password_hash, is_admin, created_at, updated_at
	      FROM accounts WHERE email = LOWER($1)`
	return scanAccount(r.db.QueryRow(ctx, q, strings.ToLower(email)))
}

// GetByID дополнительно подтягивает закладки: их отдаёт профиль.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	q := `SELECT id, email, first_name, last_name, avatar_url, password_hash, is_admin, created_at, updated_at
	      FROM accounts WHERE id = $1`
	a, err := scanAccount(r.db.QueryRow(ctx, q, id))
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `SELECT offer_ref FROM bookmarks WHERE account_id=$1 ORDER BY created_at`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, err
		}
		a.Bookmarks = append(a.Bookmarks, ref)
	}
	return a, rows.Err()
}

func (r *AccountRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE email=LOWER($1))`, email).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *AccountRepo) UpdatePassword(ctx context.Context, id, newHash string) error {
	ct, err := r.db.Exec(ctx, `UPDATE accounts SET password_hash=$2, updated_at=now() WHERE id=$1`, id, newHash)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AccountRepo) UpdateProfile(ctx context.Context, id string, firstName, lastName, avatarURL *string) error {
	ct, err := r.db.Exec(ctx, `
UPDATE accounts SET
	first_name = COALESCE($2, first_name),
	last_name  = COALESCE($3, last_name),
	avatar_url = COALESCE($4, avatar_url),
	updated_at = now()
WHERE id = $1`, id, firstName, lastName, avatarURL)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete удаляет аккаунт; сессии/закладки/брони уходят каскадом по FK.
func (r *AccountRepo) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AccountRepo) AddBookmark(ctx context.Context, id, offerRef string) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO bookmarks (account_id, offer_ref) VALUES ($1, $2)
ON CONFLICT (account_id, offer_ref) DO NOTHING`, id, offerRef)
	return err
}

func (r *AccountRepo) RemoveBookmark(ctx context.Context, id, offerRef string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM bookmarks WHERE account_id=$1 AND offer_ref=$2`, id, offerRef)
	return err
}

func (r *AccountRepo) AddBooking(ctx context.Context, id string, b domain.Booking) (*domain.Booking, error) {
	q := `
INSERT INTO bookings (account_id, offer_ref, kind)
VALUES ($1, $2, $3)
RETURNING id, offer_ref, kind, created_at`
	row := r.db.QueryRow(ctx, q, id, b.OfferRef, b.Kind)
	var out domain.Booking
	if err := row.Scan(&out.ID, &out.OfferRef, &out.Kind, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *AccountRepo) RemoveBooking(ctx context.Context, id, bookingID string) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE account_id=$1 AND id=$2`, id, bookingID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
