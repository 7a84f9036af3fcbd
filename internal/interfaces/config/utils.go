// Package config
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

func checkPort(port uint) *ValidResult {
	if port == 0 || port > 65535 {
		return ValidFail(fmt.Errorf("invalid port %d, must be in range 1-65535", port))
	}
	return ValidPass()
}

func checkBaseUrl(raw string) *ValidResult {
	parsed, err := url.Parse(raw)
	if err != nil {
		return ValidFailWith(errors.New("base url parse fail"), err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ValidFail(fmt.Errorf("base url %q must use http or https", raw))
	}
	return ValidPass()
}

func trimBaseUrl(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}
