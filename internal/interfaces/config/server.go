// Package config
package config

import (
	"errors"
	"fmt"
	"github.com/codebrew-airways/skybridge/internal/interfaces/log"
)

type ServerConfig struct {
	ServerAddress string           `json:"server_address"`
	Host          string           `json:"host"`
	Port          uint             `json:"port"`
	Address       string           `json:"-"`
	ProxyType     int              `json:"proxy_type"`
	BodyLimit     string           `json:"body_limit"`
	Limits        *ServerLimit     `json:"limits"`
	Email         *EmailConfig     `json:"email"`
	JWT           *JWTConfig       `json:"jwt"`
	SSL           *SSLConfig       `json:"ssl"`
}

func defaultServerConfig() *ServerConfig {
	return &ServerConfig{
		ServerAddress: "http://127.0.0.1:3000",
		Host:          "0.0.0.0",
		Port:          3000,
		ProxyType:     0,
		BodyLimit:     "1MB",
		Limits:        defaultServerLimit(),
		Email:         defaultEmailConfig(),
		JWT:           defaultJWTConfig(),
		SSL:           defaultSSLConfig(),
	}
}

func (config *ServerConfig) checkValid(logger log.LoggerInterface) *ValidResult {
	if result := checkPort(config.Port); result.IsFail() {
		return result
	}

	config.Address = fmt.Sprintf("%s:%d", config.Host, config.Port)

	if config.BodyLimit == "" {
		logger.Warn("body_limit is empty, the length of the request body is not restricted")
	}

	if config.Limits == nil {
		return ValidFail(errors.New("missing json field server.limits"))
	}

	if result := config.SSL.checkValid(logger); result.IsFail() {
		return result
	}
	if result := config.Limits.checkValid(logger); result.IsFail() {
		return result
	}
	if result := config.Email.checkValid(logger); result.IsFail() {
		return result
	}
	if result := config.JWT.checkValid(logger); result.IsFail() {
		return result
	}
	return ValidPass()
}
