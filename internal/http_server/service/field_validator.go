// Package service
package service

import (
	c "github.com/codebrew-airways/skybridge/internal/interfaces/config"
	. "github.com/codebrew-airways/skybridge/internal/interfaces/service"
)

type FieldValidator struct {
	Min, Max          int
	ErrShort, ErrLong *ApiStatus
}

func (v *FieldValidator) CheckString(value string) *ApiStatus {
	length := len(value)
	if length > v.Max {
		return v.ErrLong
	}
	if length < v.Min {
		return v.ErrShort
	}
	return nil
}

var (
	searchValidator  *FieldValidator
	messageValidator *FieldValidator
)

func InitValidator(config *c.ServerLimit) {
	searchValidator = &FieldValidator{
		Min:      0,
		Max:      config.SearchLengthMax,
		ErrShort: &ApiStatus{StatusName: "SEARCH_TOO_SHORT", Description: "Search term too short", HttpCode: BadRequest},
		ErrLong:  &ApiStatus{StatusName: "SEARCH_TOO_LONG", Description: "Search term too long", HttpCode: BadRequest},
	}
	messageValidator = &FieldValidator{
		Min:      1,
		Max:      config.MessageLengthMax,
		ErrShort: &ApiStatus{StatusName: "MESSAGE_EMPTY", Description: "Message must not be empty", HttpCode: BadRequest},
		ErrLong:  &ApiStatus{StatusName: "MESSAGE_TOO_LONG", Description: "Message too long", HttpCode: BadRequest},
	}
}

// ClampSearch truncates an over-long search term instead of rejecting
// the page request outright. Clamping counts runes so a multi-byte
// character is never cut in half.
func ClampSearch(term string) string {
	if searchValidator == nil {
		return term
	}
	if len(term) <= searchValidator.Max {
		return term
	}
	runes := []rune(term)
	if len(runes) > searchValidator.Max {
		runes = runes[:searchValidator.Max]
	}
	return string(runes)
}

func CheckContactMessage(message string) *ApiStatus {
	if messageValidator == nil {
		return nil
	}
	return messageValidator.CheckString(message)
}
