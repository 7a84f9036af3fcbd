// Package interfaces
package interfaces

import (
	. "github.com/codebrew-airways/skybridge/internal/interfaces/config"
)

type ConfigManagerInterface interface {
	Config() *Config
	SaveConfig() error
}
