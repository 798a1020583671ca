// cookie-check-cgi validates the session cookie of an incoming request. The
// web server execs it with the COOKIE variable set; a recognised token gets
// a plain-text OK, anything else gets the login page.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/webserv42/auth-system/internal/cgi"
	"github.com/webserv42/auth-system/internal/core/service"
	"github.com/webserv42/auth-system/internal/infrastructure/config"
	"github.com/webserv42/auth-system/internal/infrastructure/store"
	"github.com/webserv42/auth-system/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load(ctx)
	if err != nil {
		cgi.WriteErrorPage(os.Stdout, "Server misconfigured.")
		return 1
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	log.Debug().Msg("cookie-check-cgi started")

	req, err := cgi.ReadRequest(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reading cgi environment")
		cgi.WriteErrorPage(os.Stdout, "Bad request environment.")
		return 1
	}

	token := req.SessionToken(cfg.Cookie.Name)
	if token == "" {
		cgi.WriteLoginPage(os.Stdout)
		return 0
	}

	recordStore, cleanup, err := store.Open(ctx, cfg.Store)
	if err != nil {
		log.Error().Err(err).Msg("opening record store")
		cgi.WriteErrorPage(os.Stdout, "Service unavailable.")
		return 1
	}
	defer cleanup()

	auth := service.NewAuthService(recordStore, nil, nil)

	granted, err := auth.Validate(ctx, token)
	if err != nil {
		log.Error().Err(err).Msg("validating token")
		cgi.WriteErrorPage(os.Stdout, "Service unavailable.")
		return 1
	}

	if granted {
		cgi.WriteGranted(os.Stdout)
	} else {
		cgi.WriteLoginPage(os.Stdout)
	}
	return 0
}
