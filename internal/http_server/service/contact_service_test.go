package service

import (
	"strings"
	"testing"
	"time"

	c "github.com/codebrew-airways/skybridge/internal/interfaces/config"
	. "github.com/codebrew-airways/skybridge/internal/interfaces/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendContactMessage(t *testing.T) {
	InitValidator(&c.ServerLimit{SearchLengthMax: 64, MessageLengthMax: 200})
	contactService := NewContactService(nopLogger{}, &c.EmailConfig{
		Enabled:      false,
		SendDuration: time.Minute,
	})

	t.Run("requires all fields", func(t *testing.T) {
		response := contactService.SendContactMessage(&RequestContactMessage{
			Name:    "Ada",
			Email:   "",
			Message: "hello",
		})
		assert.Equal(t, ErrContactIncomplete.StatusName, response.Code)
	})

	t.Run("rejects over-long message", func(t *testing.T) {
		response := contactService.SendContactMessage(&RequestContactMessage{
			Name:    "Ada",
			Email:   "ada@example.com",
			Message: strings.Repeat("x", 201),
		})
		assert.Equal(t, "MESSAGE_TOO_LONG", response.Code)
	})

	t.Run("logs instead of sending when relay disabled", func(t *testing.T) {
		response := contactService.SendContactMessage(&RequestContactMessage{
			Name:    "Ada",
			Email:   "ada@example.com",
			Message: "The arrivals board is wrong",
		})
		require.Equal(t, SendContactSuccess.StatusName, response.Code)
		require.NotNil(t, response.Data)
		assert.True(t, response.Data.Accepted)
	})

	t.Run("enforces per-sender interval", func(t *testing.T) {
		response := contactService.SendContactMessage(&RequestContactMessage{
			Name:    "Ada",
			Email:   "ada@example.com",
			Message: "Second message right away",
		})
		assert.Equal(t, ErrContactInterval.StatusName, response.Code)
	})

	t.Run("interval is per sender", func(t *testing.T) {
		response := contactService.SendContactMessage(&RequestContactMessage{
			Name:    "Grace",
			Email:   "grace@example.com",
			Message: "Different sender, should go through",
		})
		assert.Equal(t, SendContactSuccess.StatusName, response.Code)
	})
}
