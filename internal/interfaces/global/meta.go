// Package global
package global

import (
	"flag"
)

var (
	DebugMode      = flag.Bool("debug", false, "Enable debug mode")
	ConfigFilePath = flag.String("config", "./config.json", "Path to configuration file")
)

const (
	AppName       = "skybridge"
	AppVersion    = "1.2.0"
	ConfigVersion = "1.2.0"

	DefaultFilePermissions = 0644

	// BackendUrlEnv overrides both backend base URLs when set.
	BackendUrlEnv = "SKYBRIDGE_API_URL"

	// DisplayPlaceholder is rendered wherever a derived field has no input.
	DisplayPlaceholder = "—"
)
