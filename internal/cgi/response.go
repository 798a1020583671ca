package cgi

import (
	"fmt"
	"io"
	"net/http"
)

// SessionCookie describes the credential cookie attached to a successful
// login response.
type SessionCookie struct {
	Name   string
	Value  string
	MaxAge int
	Path   string
}

// WriteRedirect emits a CGI redirect response that sets the session cookie.
// The cookie is HttpOnly: the token is a bearer credential and script access
// to it buys nothing.
func WriteRedirect(w io.Writer, location string, cookie SessionCookie) {
	c := http.Cookie{
		Name:     cookie.Name,
		Value:    cookie.Value,
		MaxAge:   cookie.MaxAge,
		Path:     cookie.Path,
		HttpOnly: true,
	}
	fmt.Fprintf(w, "Status: 302 Found\n")
	fmt.Fprintf(w, "Location: %s\n", location)
	fmt.Fprintf(w, "Set-Cookie: %s\n", c.String())
	fmt.Fprint(w, "\n")
}

// WriteGranted emits the plain-text body for an accepted token.
func WriteGranted(w io.Writer) {
	fmt.Fprint(w, "Content-Type: text/plain\n\n")
	fmt.Fprintln(w, "OK")
}

// WriteLoginPage renders the login form, shown when no valid session exists.
func WriteLoginPage(w io.Writer) {
	fmt.Fprint(w, "Content-Type: text/html\n\n")
	fmt.Fprint(w, `<html>
<head>
<title>Login</title>
<style>
body { font-family: Arial, sans-serif; display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0; }
.login-container { padding: 20px; border-radius: 8px; box-shadow: 0 0 10px rgba(0, 0, 0, 0.1); }
label { display: block; margin-bottom: 8px; }
input { width: 100%; padding: 10px; margin-bottom: 20px; }
</style>
</head>
<body>
<div class="login-container">
<h1>Login</h1>
<form method="POST" action="/cgi/login">
<label for="username">Username:</label>
<input type="text" id="username" name="username">
<label for="password">Password:</label>
<input type="password" id="password" name="password">
<input type="submit" value="Login">
</form>
</div>
</body>
</html>
`)
}

// WriteErrorPage renders a minimal HTML error body.
func WriteErrorPage(w io.Writer, message string) {
	fmt.Fprint(w, "Content-Type: text/html\n\n")
	fmt.Fprintf(w, `<html>
<head>
<title>Error</title>
<style>
body { text-align: center; }
</style>
</head>
<body>
<p>%s</p>
</body>
</html>
`, message)
}
