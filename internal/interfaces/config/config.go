// Package config
package config

import (
	"fmt"
	"github.com/codebrew-airways/skybridge/internal/interfaces/global"
	"github.com/codebrew-airways/skybridge/internal/interfaces/log"
)

type Config struct {
	ConfigVersion string         `json:"config_version"`
	Server        *ServerConfig  `json:"server"`
	Backend       *BackendConfig `json:"backend"`
	Admin         *AdminConfig   `json:"admin"`
}

func DefaultConfig() *Config {
	return &Config{
		ConfigVersion: global.ConfigVersion,
		Server:        defaultServerConfig(),
		Backend:       defaultBackendConfig(),
		Admin:         defaultAdminConfig(),
	}
}

func (c *Config) CheckValid(logger log.LoggerInterface) *ValidResult {
	if c.ConfigVersion != global.ConfigVersion {
		return ValidFail(fmt.Errorf("config version mismatch, expected %s, got %s", global.ConfigVersion, c.ConfigVersion))
	}
	if result := c.Server.checkValid(logger); result.IsFail() {
		return result
	}
	if result := c.Backend.checkValid(logger); result.IsFail() {
		return result
	}
	if result := c.Admin.checkValid(logger); result.IsFail() {
		return result
	}
	return ValidPass()
}
