package services

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey is returned by every adapter operation when no Gemini key is configured
	ErrMissingAPIKey  = errors.New("API Key topilmadi. Iltimos, sozlamalarni tekshiring")
	ErrEmptyResponse  = errors.New("AI tahlil qila olmadi: empty response")
	ErrInvalidImage   = errors.New("invalid image payload")
	ErrInvalidRequest = errors.New("invalid recommendation request")
	ErrEmptyMessage   = errors.New("empty chat message")
	ErrInvalidRole    = errors.New("invalid chat role")
)

// ServiceError wraps a failure of the remote generation call
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("gemini %s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// ParseError means the model answered with text that does not match the declared schema.
// Raw keeps the text as received.
type ParseError struct {
	Op  string
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("gemini %s: malformed response: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
