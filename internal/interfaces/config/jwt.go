// Package config
package config

import (
	"errors"
	"github.com/codebrew-airways/skybridge/internal/interfaces/log"
	"github.com/thanhpk/randstr"
	"time"
)

type JWTConfig struct {
	Secret          string        `json:"secret"`
	ExpiresTime     string        `json:"expires_time"`
	ExpiresDuration time.Duration `json:"-"`
}

func defaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		Secret:      randstr.String(64),
		ExpiresTime: "12h",
	}
}

func (config *JWTConfig) checkValid(logger log.LoggerInterface) *ValidResult {
	if duration, err := time.ParseDuration(config.ExpiresTime); err != nil {
		return ValidFailWith(errors.New("invalid json field server.jwt.expires_time"), err)
	} else {
		config.ExpiresDuration = duration
	}

	if config.Secret == "" {
		config.Secret = randstr.String(64)
		logger.Debug("Generated random JWT secret, admin sessions will not survive a restart")
	}

	return ValidPass()
}
