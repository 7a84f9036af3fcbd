// Package config
package config

import (
	"errors"
	"github.com/codebrew-airways/skybridge/internal/interfaces/log"
	"time"
)

type ServerLimit struct {
	RateLimit         int           `json:"rate_limit"`
	RateLimitWindow   string        `json:"rate_limit_window"`
	RateLimitDuration time.Duration `json:"-"`
	SearchLengthMax   int           `json:"search_length_max"`
	MessageLengthMax  int           `json:"message_length_max"`
}

func defaultServerLimit() *ServerLimit {
	return &ServerLimit{
		RateLimit:        60,
		RateLimitWindow:  "1m",
		SearchLengthMax:  64,
		MessageLengthMax: 2000,
	}
}

func (config *ServerLimit) checkValid(_ log.LoggerInterface) *ValidResult {
	if duration, err := time.ParseDuration(config.RateLimitWindow); err != nil {
		return ValidFailWith(errors.New("invalid json field server.limits.rate_limit_window"), err)
	} else {
		config.RateLimitDuration = duration
	}

	if config.SearchLengthMax <= 0 {
		return ValidFail(errors.New("invalid json field server.limits.search_length_max, value must larger than 0"))
	}
	if config.MessageLengthMax <= 0 {
		return ValidFail(errors.New("invalid json field server.limits.message_length_max, value must larger than 0"))
	}

	return ValidPass()
}
