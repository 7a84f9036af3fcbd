// Package config
package config

import (
	"errors"
	"github.com/codebrew-airways/skybridge/internal/interfaces/log"
	"gopkg.in/gomail.v2"
	"time"
)

type EmailConfig struct {
	Enabled          bool           `json:"enabled"`
	Host             string         `json:"host"`
	Port             int            `json:"port"`
	EmailServer      *gomail.Dialer `json:"-"`
	Username         string         `json:"username"`
	Password         string         `json:"password"`
	ContactRecipient string         `json:"contact_recipient"`
	SendInterval     string         `json:"send_interval"`
	SendDuration     time.Duration  `json:"-"`
}

func defaultEmailConfig() *EmailConfig {
	return &EmailConfig{
		Enabled:          false,
		Host:             "smtp.example.com",
		Port:             465,
		Username:         "noreply@example.com",
		Password:         "",
		ContactRecipient: "support@example.com",
		SendInterval:     "1m",
	}
}

func (config *EmailConfig) checkValid(logger log.LoggerInterface) *ValidResult {
	if duration, err := time.ParseDuration(config.SendInterval); err != nil {
		return ValidFailWith(errors.New("invalid json field server.email.send_interval"), err)
	} else {
		config.SendDuration = duration
	}

	if !config.Enabled {
		logger.Info("Email relay disabled, contact form submissions will only be logged")
		return ValidPass()
	}

	if config.ContactRecipient == "" {
		return ValidFail(errors.New("invalid json field server.email.contact_recipient, value must not be empty when email is enabled"))
	}

	config.EmailServer = gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	dial, err := config.EmailServer.Dial()
	if err != nil {
		return ValidFailWith(errors.New("connecting to smtp server fail"), err)
	}
	_ = dial.Close()

	return ValidPass()
}
