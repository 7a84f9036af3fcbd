// Package service
package service

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type SessionServiceInterface interface {
	// Authenticate checks the console password against the stored hash.
	Authenticate(password string) error
	// IssueSession mints a fresh session id and the signed cookie
	// carrying it.
	IssueSession() (sessionID string, cookie *http.Cookie)
	// ExpiredCookie returns a cookie that clears the session on the
	// client.
	ExpiredCookie() *http.Cookie
	// SessionID extracts the session id placed in the context by the
	// JWT middleware. ok is false on public routes.
	SessionID(ctx echo.Context) (sessionID string, ok bool)
	// HasSession reports whether the request carries a valid session
	// cookie. Used on public pages, which skip the JWT middleware.
	HasSession(ctx echo.Context) bool
}
