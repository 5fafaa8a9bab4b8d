package main

import (
	"log"

	"github.com/OgbonnaBlessed/velora-sub001/internal/db"
	"github.com/OgbonnaBlessed/velora-sub001/internal/platform/config"
	phttp "github.com/OgbonnaBlessed/velora-sub001/internal/platform/http"
	"github.com/OgbonnaBlessed/velora-sub001/internal/platform/notify"

	authhttp "github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/http"
)

func main() {
	cfg := config.Load()

	opts := authhttp.Options{
		JWTSecret:    cfg.JWTSecret,
		AccessTTL:    cfg.AccessTTL,
		RememberTTL:  cfg.RememberTTL,
		OtpTTL:       cfg.OtpTTL,
		ResetTTL:     cfg.ResetTTL,
		CookieName:   cfg.CookieName,
		CookieSecure: cfg.CookieSecure,
	}

	var authModule *authhttp.Module
	if cfg.Env == "dev" {
		// локальная разработка: всё в памяти, коды в лог
		authModule = authhttp.NewModule(opts)
	} else {
		dbpool := db.MustOpen(cfg.PGDSN)
		defer dbpool.Close()
		rdb := db.MustOpenRedis(cfg.RedisAddr, cfg.RedisDB)
		defer rdb.Close()

		mailer := notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
		authModule = authhttp.NewModulePG(dbpool, rdb, opts).WithNotifier(mailer)
	}

	app := phttp.NewServer(phttp.Options{AppName: "velora-auth"}, authModule)

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := app.Listen(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
