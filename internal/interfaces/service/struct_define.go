// Package service
package service

import (
	"time"

	c "github.com/codebrew-airways/skybridge/internal/interfaces/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type HttpCode int

const (
	Unsatisfied         HttpCode = 0
	Ok                  HttpCode = 200
	BadRequest          HttpCode = 400
	Unauthorized        HttpCode = 401
	PermissionDenied    HttpCode = 403
	NotFound            HttpCode = 404
	Conflict            HttpCode = 409
	TooManyRequests     HttpCode = 429
	ServerInternalError HttpCode = 500
	BadGateway          HttpCode = 502
)

func (hc HttpCode) Code() int {
	return int(hc)
}

type ApiStatus struct {
	StatusName  string
	Description string
	HttpCode    HttpCode
}

type ApiResponse[T any] struct {
	HttpCode int    `json:"-"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Data     *T     `json:"data"`
}

// Claims carries the admin session identity inside the signed cookie.
// The session id keys the per-session dashboard state.
type Claims struct {
	SessionID string `json:"sid"`
	config    *c.JWTConfig
	jwt.RegisteredClaims
}

func NewClaims(config *c.JWTConfig, sessionID string) *Claims {
	return &Claims{
		SessionID: sessionID,
		config:    config,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "SkybridgeServer",
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.ExpiresDuration)),
		},
	}
}

func (claim *Claims) GenerateKey() string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claim)
	tokenString, _ := token.SignedString([]byte(claim.config.Secret))
	return tokenString
}

func (res *ApiResponse[T]) Response(ctx echo.Context) error {
	return ctx.JSON(res.HttpCode, res)
}

var (
	ErrIllegalParam          = ApiStatus{"PARAM_ERROR", "Invalid parameter", BadRequest}
	ErrLackParam             = ApiStatus{"PARAM_LACK_ERROR", "Missing parameter", BadRequest}
	ErrWrongPassword         = ApiStatus{"WRONG_PASSWORD", "Wrong password!", Unauthorized}
	ErrBackendUnavailable    = ApiStatus{"BACKEND_UNAVAILABLE", "The flight database is unavailable", BadGateway}
	ErrMissingOrMalformedJwt = ApiStatus{"MISSING_OR_MALFORMED_JWT", "Missing or malformed session token", BadRequest}
	ErrInvalidOrExpiredJwt   = ApiStatus{"INVALID_OR_EXPIRED_JWT", "Invalid or expired session token", Unauthorized}
	ErrUnknown               = ApiStatus{"UNKNOWN_JWT_ERROR", "Unknown session token error", ServerInternalError}
)

func NewErrorResponse(ctx echo.Context, codeStatus *ApiStatus) error {
	return NewApiResponse[any](codeStatus, Unsatisfied, nil).Response(ctx)
}

func NewApiResponse[T any](codeStatus *ApiStatus, httpCode HttpCode, data *T) *ApiResponse[T] {
	if httpCode == Unsatisfied {
		httpCode = codeStatus.HttpCode
	}
	if httpCode == Unsatisfied {
		httpCode = Ok
	}
	return &ApiResponse[T]{
		HttpCode: httpCode.Code(),
		Code:     codeStatus.StatusName,
		Message:  codeStatus.Description,
		Data:     data,
	}
}
