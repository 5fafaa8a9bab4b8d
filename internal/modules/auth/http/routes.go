package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/domain"
	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/infra" // in-memory
	pg "github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/infra/pg"
	rds "github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/infra/redis"
	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/service"
	plathttp "github.com/OgbonnaBlessed/velora-sub001/internal/platform/http"
	"github.com/OgbonnaBlessed/velora-sub001/internal/platform/notify"
	"github.com/OgbonnaBlessed/velora-sub001/internal/platform/security"
)

type Options struct {
	JWTSecret    string
	AccessTTL    time.Duration
	RememberTTL  time.Duration
	OtpTTL       time.Duration
	ResetTTL     time.Duration
	CookieName   string
	CookieSecure bool
}

func (o *Options) defaults() {
	if o.JWTSecret == "" {
		o.JWTSecret = "super-secret"
	}
	if o.CookieName == "" {
		o.CookieName = "access_token"
	}
}

// Module wires up dependencies for the auth HTTP module.
type Module struct {
	accounts domain.AccountRepo
	pending  domain.PendingRepo
	codes    domain.CodeCache
	notifier notify.Notifier
	opts     Options
}

// NewModule — всё в памяти: локальная разработка и тесты без Postgres/Redis.
func NewModule(opts Options) *Module {
	opts.defaults()
	return &Module{
		accounts: infra.NewMemAccountRepo(),
		pending:  infra.NewMemPendingRepo(),
		codes:    infra.NewMemCodeCache(),
		notifier: notify.NewLogNotifier(),
		opts:     opts,
	}
}

// NewModulePG — боевой набор: аккаунты в Postgres, заявки и коды в Redis.
func NewModulePG(db *pgxpool.Pool, rdb goredis.UniversalClient, opts Options) *Module {
	opts.defaults()
	return &Module{
		accounts: pg.NewAccountRepo(db),
		pending:  rds.NewPendingRepo(rdb),
		codes:    rds.NewCodeCache(rdb),
		notifier: notify.NewLogNotifier(),
		opts:     opts,
	}
}

func (m *Module) WithNotifier(n notify.Notifier) *Module {
	m.notifier = n
	return m
}

func (m *Module) Register(r fiber.Router) {
	jwtMgr := security.NewJWTManager(m.opts.JWTSecret, m.opts.AccessTTL, m.opts.RememberTTL)

	svc := service.New(service.Params{
		Accounts: m.accounts,
		Pending:  m.pending,
		Codes:    m.codes,
		Tokens:   jwtMgr,
		Notifier: m.notifier,
		OtpTTL:   m.opts.OtpTTL,
		ResetTTL: m.opts.ResetTTL,
	})

	cookie := cookieWriter{name: m.opts.CookieName, secure: m.opts.CookieSecure}

	// -------- public --------
	r.Post("/sign-up", SignUpHandler(svc))
	r.Post("/sign-up/confirm", SignUpConfirmHandler(svc))
	r.Post("/sign-up/resend", SignUpResendHandler(svc))
	r.Post("/sign-in", SignInHandler(svc, cookie))
	r.Post("/auth/:provider", OAuthSignInHandler(svc, cookie))
	r.Post("/forgot-password", ForgotPasswordHandler(svc))
	r.Post("/forgot-password/resend", ForgotPasswordResendHandler(svc))
	r.Post("/confirm-email", ConfirmEmailHandler(svc))
	r.Post("/verify-code", VerifyCodeHandler(svc))
	r.Post("/reset-password", ResetPasswordHandler(svc))

	// -------- protected --------
	protected := r.Group("", plathttp.BearerAuth(jwtMgr, m.opts.CookieName))
	protected.Get("/user/devices", ListDevicesHandler(svc))
	protected.Delete("/user/devices/:token", DeleteDeviceHandler(svc))
	protected.Get("/user", GetProfileHandler(m.accounts))
	protected.Patch("/user", UpdateProfileHandler(m.accounts))
	protected.Delete("/user", DeleteAccountHandler(m.accounts))
	protected.Post("/user/bookmarks", AddBookmarkHandler(m.accounts))
	protected.Delete("/user/bookmarks/:offer_ref", RemoveBookmarkHandler(m.accounts))
	protected.Post("/user/bookings", AddBookingHandler(m.accounts))
	protected.Delete("/user/bookings/:booking_id", RemoveBookingHandler(m.accounts))
}

// cookieWriter ставит bearer-токен как HTTP-only cookie (браузерный транспорт).
type cookieWriter struct {
	name   string
	secure bool
}

func (w cookieWriter) write(c *fiber.Ctx, token string, exp time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     w.name,
		Value:    token,
		Expires:  exp,
		HTTPOnly: true,
		Secure:   w.secure,
		SameSite: "Lax",
		Path:     "/",
	})
}
