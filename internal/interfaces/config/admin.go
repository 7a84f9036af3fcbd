// Package config
package config

import (
	"errors"
	"github.com/codebrew-airways/skybridge/internal/interfaces/log"
	"golang.org/x/crypto/bcrypt"
)

// AdminConfig gates the admin console. A single shared password is a UI
// affordance, not a security boundary: the backend performs no
// authorization of its own.
type AdminConfig struct {
	Password     string `json:"password"`
	PasswordHash string `json:"password_hash"`
	CookieName   string `json:"cookie_name"`
}

func defaultAdminConfig() *AdminConfig {
	return &AdminConfig{
		Password:   "password",
		CookieName: "skybridge_session",
	}
}

func (config *AdminConfig) checkValid(logger log.LoggerInterface) *ValidResult {
	if config.CookieName == "" {
		config.CookieName = "skybridge_session"
	}

	if config.PasswordHash == "" {
		if config.Password == "" {
			config.Password = "password"
		}
		if config.Password == "password" {
			logger.Warn("Admin console is using the default password, change admin.password or set admin.password_hash")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(config.Password), bcrypt.DefaultCost)
		if err != nil {
			return ValidFailWith(errors.New("admin password hash generation fail"), err)
		}
		config.PasswordHash = string(hash)
	}
	// The plaintext is only a bootstrap convenience, never kept around.
	config.Password = ""

	return ValidPass()
}
