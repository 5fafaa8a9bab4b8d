package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/domain"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestPendingRepoSaveGet(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewPendingRepo(client)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.PendingRegistration{
		Email: "A@x.com", FirstName: "A", LastName: "B", PasswordHash: "hash", Code: "1234",
	}, 10*time.Minute))

	p, err := repo.Get(ctx, "a@X.com")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", p.Email)
	require.Equal(t, "1234", p.Code)
	require.Equal(t, "A", p.FirstName)
	require.True(t, p.ExpiresAt.After(time.Now()))
}

func TestPendingRepoGetMissing(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewPendingRepo(client)

	_, err := repo.Get(context.Background(), "missing@x.com")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPendingRepoTTLExpiry(t *testing.T) {
	mr, client := newTestClient(t)
	repo := NewPendingRepo(client)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.PendingRegistration{
		Email: "t@x.com", Code: "1234",
	}, 10*time.Minute))

	mr.FastForward(11 * time.Minute)

	_, err := repo.Get(ctx, "t@x.com")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPendingRepoReplaceCode(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewPendingRepo(client)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.PendingRegistration{
		Email: "r@x.com", FirstName: "R", PasswordHash: "hash", Code: "1234",
	}, 10*time.Minute))

	require.NoError(t, repo.ReplaceCode(ctx, "r@x.com", "5678", 10*time.Minute))

	p, err := repo.Get(ctx, "r@x.com")
	require.NoError(t, err)
	require.Equal(t, "5678", p.Code)
	require.Equal(t, "R", p.FirstName)

	require.ErrorIs(t, repo.ReplaceCode(ctx, "missing@x.com", "9999", time.Minute), domain.ErrNotFound)
}

func TestPendingRepoSaveOverwrites(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewPendingRepo(client)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.PendingRegistration{Email: "o@x.com", Code: "1111"}, 10*time.Minute))
	require.NoError(t, repo.Save(ctx, domain.PendingRegistration{Email: "o@x.com", Code: "2222"}, 10*time.Minute))

	p, err := repo.Get(ctx, "o@x.com")
	require.NoError(t, err)
	require.Equal(t, "2222", p.Code)
}

func TestPendingRepoDelete(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewPendingRepo(client)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.PendingRegistration{Email: "d@x.com", Code: "1234"}, 10*time.Minute))
	require.NoError(t, repo.Delete(ctx, "d@x.com"))

	_, err := repo.Get(ctx, "d@x.com")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, "d@x.com")) // идемпотентно
}
