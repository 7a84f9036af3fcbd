// Package config
package config

import (
	"errors"
	"github.com/codebrew-airways/skybridge/internal/interfaces/global"
	"github.com/codebrew-airways/skybridge/internal/interfaces/log"
	"os"
	"time"
)

// BackendConfig points the front end at the REST backend that owns all
// entity data. The admin console and the public pages historically used
// two separately configured base URLs with different fallbacks, so both
// are kept as distinct fields instead of being silently unified.
type BackendConfig struct {
	AdminApiUrl     string        `json:"admin_api_url"`
	PublicApiUrl    string        `json:"public_api_url"`
	RequestTimeout  string        `json:"request_timeout"`
	RequestDuration time.Duration `json:"-"`
	BoardTimeout    string        `json:"board_timeout"`
	BoardDuration   time.Duration `json:"-"`
}

func defaultBackendConfig() *BackendConfig {
	return &BackendConfig{
		AdminApiUrl:    "http://localhost:8080",
		PublicApiUrl:   "",
		RequestTimeout: "15s",
		BoardTimeout:   "8s",
	}
}

func (config *BackendConfig) checkValid(logger log.LoggerInterface) *ValidResult {
	if override := os.Getenv(global.BackendUrlEnv); override != "" {
		logger.InfoF("Backend base url overridden by %s", global.BackendUrlEnv)
		config.AdminApiUrl = override
		config.PublicApiUrl = override
	}

	config.AdminApiUrl = trimBaseUrl(config.AdminApiUrl)
	config.PublicApiUrl = trimBaseUrl(config.PublicApiUrl)

	if config.AdminApiUrl == "" {
		return ValidFail(errors.New("invalid json field backend.admin_api_url, value must not be empty"))
	}
	if result := checkBaseUrl(config.AdminApiUrl); result.IsFail() {
		return result
	}

	if config.PublicApiUrl == "" {
		logger.WarnF("backend.public_api_url is empty, falling back to admin api url %s", config.AdminApiUrl)
		config.PublicApiUrl = config.AdminApiUrl
	} else if result := checkBaseUrl(config.PublicApiUrl); result.IsFail() {
		return result
	}

	if duration, err := time.ParseDuration(config.RequestTimeout); err != nil {
		return ValidFailWith(errors.New("invalid json field backend.request_timeout"), err)
	} else {
		config.RequestDuration = duration
	}

	if duration, err := time.ParseDuration(config.BoardTimeout); err != nil {
		return ValidFailWith(errors.New("invalid json field backend.board_timeout"), err)
	} else {
		config.BoardDuration = duration
	}

	return ValidPass()
}
