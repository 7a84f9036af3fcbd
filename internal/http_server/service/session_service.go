// Package service
package service

import (
	"errors"
	"net/http"
	"time"

	c "github.com/codebrew-airways/skybridge/internal/interfaces/config"
	"github.com/codebrew-airways/skybridge/internal/interfaces/log"
	. "github.com/codebrew-airways/skybridge/internal/interfaces/service"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

var ErrWrongAdminPassword = errors.New("wrong admin password")

type SessionService struct {
	logger log.LoggerInterface
	admin  *c.AdminConfig
	jwt    *c.JWTConfig
	secure bool
}

func NewSessionService(logger log.LoggerInterface, config *c.ServerConfig, admin *c.AdminConfig) *SessionService {
	return &SessionService{
		logger: logger,
		admin:  admin,
		jwt:    config.JWT,
		secure: config.SSL.Enable,
	}
}

func (sessionService *SessionService) Authenticate(password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(sessionService.admin.PasswordHash), []byte(password)); err != nil {
		return ErrWrongAdminPassword
	}
	return nil
}

func (sessionService *SessionService) IssueSession() (string, *http.Cookie) {
	sessionID := uuid.NewString()
	claims := NewClaims(sessionService.jwt, sessionID)
	return sessionID, &http.Cookie{
		Name:     sessionService.admin.CookieName,
		Value:    claims.GenerateKey(),
		Path:     "/",
		Expires:  time.Now().Add(sessionService.jwt.ExpiresDuration),
		HttpOnly: true,
		Secure:   sessionService.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (sessionService *SessionService) ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     sessionService.admin.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sessionService.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (sessionService *SessionService) HasSession(ctx echo.Context) bool {
	cookie, err := ctx.Cookie(sessionService.admin.CookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	token, err := jwt.ParseWithClaims(cookie.Value, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return []byte(sessionService.jwt.Secret), nil
	}, jwt.WithValidMethods([]string{"HS512"}))
	return err == nil && token.Valid
}

func (sessionService *SessionService) SessionID(ctx echo.Context) (string, bool) {
	token, ok := ctx.Get("user").(*jwt.Token)
	if !ok {
		return "", false
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.SessionID == "" {
		return "", false
	}
	return claims.SessionID, true
}
