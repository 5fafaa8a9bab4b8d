package service

import (
	"errors"
	"time"

	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/domain"
	"github.com/OgbonnaBlessed/velora-sub001/internal/platform/device"
	"github.com/OgbonnaBlessed/velora-sub001/internal/platform/notify"
	"github.com/OgbonnaBlessed/velora-sub001/internal/platform/security"
)

// ErrNotify — письмо не ушло. Запись (заявка/код) к этому моменту уже создана,
// поэтому путь восстановления для клиента — resend.
var ErrNotify = errors.New("notify_failed")

const otpDigits = 4

// Client — контекст запроса, из которого выводится сессия устройства.
type Client struct {
	IP        string
	UserAgent string
}

// Service — оркестрация signup/verify/signin/reset поверх хранилищ.
// Единственный слой с поведенческим контрактом; хендлеры только транслируют HTTP.
type Service struct {
	accounts domain.AccountRepo
	pending  domain.PendingRepo
	codes    domain.CodeCache
	tokens   *security.JWTManager
	devices  device.Classifier
	notifier notify.Notifier

	otpTTL   time.Duration
	resetTTL time.Duration
}

type Params struct {
	Accounts domain.AccountRepo
	Pending  domain.PendingRepo
	Codes    domain.CodeCache
	Tokens   *security.JWTManager
	Devices  device.Classifier
	Notifier notify.Notifier
	OtpTTL   time.Duration
	ResetTTL time.Duration
}

func New(p Params) *Service {
	if p.OtpTTL == 0 {
		p.OtpTTL = 10 * time.Minute
	}
	if p.ResetTTL == 0 {
		p.ResetTTL = 20 * time.Minute
	}
	if p.Devices == nil {
		p.Devices = device.NewClassifier()
	}
	return &Service{
		accounts: p.Accounts,
		pending:  p.Pending,
		codes:    p.Codes,
		tokens:   p.Tokens,
		devices:  p.Devices,
		notifier: p.Notifier,
		otpTTL:   p.OtpTTL,
		resetTTL: p.ResetTTL,
	}
}
