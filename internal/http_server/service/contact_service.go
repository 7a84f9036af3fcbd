// Package service
package service

import (
	"strings"
	"sync"
	"time"

	"github.com/codebrew-airways/skybridge/internal/interfaces/config"
	"github.com/codebrew-airways/skybridge/internal/interfaces/log"
	. "github.com/codebrew-airways/skybridge/internal/interfaces/service"
	"gopkg.in/gomail.v2"
)

var (
	contactService *ContactService
	once           sync.Once
)

// ContactService relays customer feedback to the configured mailbox.
// With the relay disabled the message is only logged, which keeps the
// form functional in development setups without SMTP credentials.
type ContactService struct {
	logger       log.LoggerInterface
	config       *config.EmailConfig
	mu           sync.Mutex
	lastSendTime map[string]time.Time
}

func NewContactService(logger log.LoggerInterface, config *config.EmailConfig) *ContactService {
	once.Do(func() {
		contactService = &ContactService{
			logger:       logger,
			config:       config,
			lastSendTime: make(map[string]time.Time),
		}
	})
	return contactService
}

var (
	SendContactSuccess   = ApiStatus{StatusName: "SEND_CONTACT_SUCCESS", Description: "Your message has been successfully submitted.", HttpCode: Ok}
	ErrContactInterval   = ApiStatus{StatusName: "CONTACT_SEND_INTERVAL", Description: "Please wait before sending another message", HttpCode: TooManyRequests}
	ErrContactSend       = ApiStatus{StatusName: "CONTACT_SEND_ERROR", Description: "Message could not be delivered", HttpCode: ServerInternalError}
	ErrContactIncomplete = ApiStatus{StatusName: "CONTACT_INCOMPLETE", Description: "Name, email and message are all required", HttpCode: BadRequest}
)

func (contactService *ContactService) SendContactMessage(req *RequestContactMessage) *ApiResponse[ResponseContactMessage] {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	message := strings.TrimSpace(req.Message)

	if name == "" || email == "" || message == "" {
		return NewApiResponse[ResponseContactMessage](&ErrContactIncomplete, Unsatisfied, nil)
	}
	if status := CheckContactMessage(message); status != nil {
		return NewApiResponse[ResponseContactMessage](status, Unsatisfied, nil)
	}

	contactService.mu.Lock()
	if last, ok := contactService.lastSendTime[email]; ok && time.Since(last) < contactService.config.SendDuration {
		contactService.mu.Unlock()
		return NewApiResponse[ResponseContactMessage](&ErrContactInterval, Unsatisfied, nil)
	}
	contactService.lastSendTime[email] = time.Now()
	contactService.mu.Unlock()

	if !contactService.config.Enabled {
		contactService.logger.InfoF("Contact message from %s <%s>: %s", name, email, message)
		return NewApiResponse(&SendContactSuccess, Unsatisfied, &ResponseContactMessage{Accepted: true})
	}

	m := gomail.NewMessage()
	m.SetHeader("From", contactService.config.Username)
	m.SetHeader("To", contactService.config.ContactRecipient)
	m.SetHeader("Reply-To", email)
	m.SetHeader("Subject", "Customer feedback from "+name)
	m.SetBody("text/plain", message)

	if err := contactService.config.EmailServer.DialAndSend(m); err != nil {
		contactService.logger.ErrorF("Fail to relay contact message from %s: %v", email, err)
		return NewApiResponse[ResponseContactMessage](&ErrContactSend, Unsatisfied, nil)
	}

	return NewApiResponse(&SendContactSuccess, Unsatisfied, &ResponseContactMessage{Accepted: true})
}
