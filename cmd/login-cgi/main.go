// login-cgi is the CGI entry point for authentication. The web server execs
// it with the request environment set and the form body on stdin; it prints
// CGI headers and a body to stdout.
//
// On success it sets the session cookie and redirects to the site root. An
// invalid form re-renders the login page; a store failure is a hard failure
// (error page plus non-zero exit).
package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"

	"github.com/webserv42/auth-system/internal/cgi"
	"github.com/webserv42/auth-system/internal/core/domain"
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
	log.Debug().Msg("login-cgi started")

	req, err := cgi.ReadRequest(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reading cgi environment")
		cgi.WriteErrorPage(os.Stdout, "Bad request environment.")
		return 1
	}
	if req.Method != "POST" {
		log.Warn().Str("method", req.Method).Msg("login called with non-POST method")
		cgi.WriteLoginPage(os.Stdout)
		return 0
	}

	length, err := req.BodyLength()
	if err != nil {
		log.Error().Err(err).Msg("invalid CONTENT_LENGTH")
		cgi.WriteErrorPage(os.Stdout, "Error: CONTENT_LENGTH is not set.")
		return 1
	}

	form, err := cgi.DecodeLoginForm(os.Stdin, length)
	if err != nil {
		log.Warn().Err(err).Msg("invalid login form")
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

	token, err := auth.Login(ctx, form.Username, form.Password)
	switch {
	case err == nil:
		log.Info().Str("username", form.Username).Msg("login succeeded")
		cgi.WriteRedirect(os.Stdout, "/", cgi.SessionCookie{
			Name:   cfg.Cookie.Name,
			Value:  token,
			MaxAge: cfg.Cookie.MaxAge,
			Path:   cfg.Cookie.Path,
		})
		return 0

	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrInvalidCredentials):
		log.Warn().Str("username", form.Username).Err(err).Msg("login denied")
		cgi.WriteLoginPage(os.Stdout)
		return 0

	case errors.Is(err, domain.ErrWriteConflict):
		log.Warn().Str("username", form.Username).Err(err).Msg("login lost the store lock")
		cgi.WriteErrorPage(os.Stdout, "Busy, please retry.")
		return 1

	default:
		log.Error().Str("username", form.Username).Err(err).Msg("login failed")
		cgi.WriteErrorPage(os.Stdout, "Service unavailable.")
		return 1
	}
}
