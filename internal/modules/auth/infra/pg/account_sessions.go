package pg

import (
	"context"

	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/domain"
)

// Сессии устройств живут в отдельной таблице под FK на аккаунт; вставка строки
// атомарна, поэтому два конкурентных входа не теряют друг друга.

func (r *AccountRepo) AppendSession(ctx context.Context, id string, s domain.Session) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO sessions (token, account_id, device_model, browser, os, ip_address)
VALUES ($1, $2, $3, $4, $5, $6)`,
		s.Token, id, s.DeviceModel, s.Browser, s.OS, s.IPAddress)
	return err
}

func (r *AccountRepo) RemoveSession(ctx context.Context, id, token string) (bool, error) {
	ct, err := r.db.Exec(ctx,
		`DELETE FROM sessions WHERE account_id=$1 AND token=$2`, id, token)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *AccountRepo) ListSessions(ctx context.Context, id string) ([]domain.Session, error) {
	rows, err := r.db.Query(ctx, `
SELECT token, device_model, browser, os, ip_address, created_at
FROM sessions WHERE account_id=$1 ORDER BY created_at DESC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Session{}
	for rows.Next() {
		var s domain.Session
		if err := rows.Scan(&s.Token, &s.DeviceModel, &s.Browser, &s.OS, &s.IPAddress, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
