// Package cgi is the glue between the CGI process environment and the auth
// core: it reads the request variables the web server exports, decodes the
// form body, extracts the session cookie, and renders responses to stdout.
// Nothing here touches the record store directly.
package cgi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sethvargo/go-envconfig"

	"github.com/webserv42/auth-system/internal/core/domain"
)

// Request holds the CGI variables the web server sets for one invocation.
// CONTENT_LENGTH stays a string here: an unset variable and a malformed one
// are different failures and both need reporting.
type Request struct {
	Method        string `env:"REQUEST_METHOD"`
	ContentLength string `env:"CONTENT_LENGTH"`
	ContentType   string `env:"CONTENT_TYPE"`
	Cookie        string `env:"COOKIE"`
}

// ReadRequest loads the CGI environment.
func ReadRequest(ctx context.Context) (*Request, error) {
	var req Request
	if err := envconfig.Process(ctx, &req); err != nil {
		return nil, fmt.Errorf("read cgi environment: %w", err)
	}
	return &req, nil
}

// BodyLength parses CONTENT_LENGTH. Unset or non-numeric values are an
// invalid request: without it the body cannot be read safely.
func (r *Request) BodyLength() (int, error) {
	if r.ContentLength == "" {
		return 0, fmt.Errorf("%w: CONTENT_LENGTH is not set", domain.ErrInvalidRequest)
	}
	n, err := strconv.Atoi(r.ContentLength)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: CONTENT_LENGTH %q is not a valid length", domain.ErrInvalidRequest, r.ContentLength)
	}
	return n, nil
}

// SessionToken extracts the named cookie's value from the COOKIE variable.
// Returns "" when the variable is missing, unparsable, or lacks the cookie;
// the caller treats an empty token as denied.
func (r *Request) SessionToken(name string) string {
	if r.Cookie == "" {
		return ""
	}
	cookies, err := http.ParseCookie(r.Cookie)
	if err != nil {
		return ""
	}
	for _, c := range cookies {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// LoginForm is the decoded and validated login body.
type LoginForm struct {
	Username string `validate:"required,max=128"`
	Password string `validate:"required,max=128"`
}

// DecodeLoginForm reads exactly length bytes of form-encoded body and
// decodes the username and password fields. Validation failures map to
// domain.ErrInvalidRequest so the caller re-renders the login page instead
// of failing hard.
func DecodeLoginForm(body io.Reader, length int) (*LoginForm, error) {
	buf := make([]byte, length)
	if _, err := io.ReadFull(body, buf); err != nil {
		return nil, fmt.Errorf("%w: read form body: %v", domain.ErrInvalidRequest, err)
	}

	values, err := url.ParseQuery(strings.TrimSpace(string(buf)))
	if err != nil {
		return nil, fmt.Errorf("%w: parse form body: %v", domain.ErrInvalidRequest, err)
	}

	form := &LoginForm{
		Username: values.Get("username"),
		Password: values.Get("password"),
	}
	if err := validateForm(form); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	return form, nil
}
