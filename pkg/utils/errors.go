package utils

import (
	"errors"
	"strings"
)

// Error kinds surfaced by the remote clients and the form controllers.
var (
	ErrNetwork          = errors.New("network error")
	ErrServer           = errors.New("server error")
	ErrValidationFailed = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
)

// APIError carries a classified failure plus whatever the backend said about it.
type APIError struct {
	Kind    error
	Message string
	Errors  []string
	Status  int
	Cause   error
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *APIError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func NewValidationError(message string) error {
	return &APIError{Kind: ErrValidationFailed, Message: message}
}

func NewNotFoundError(message string) error {
	return &APIError{Kind: ErrNotFound, Message: message}
}

// UserMessage converts err into text fit for an inline error or banner.
// A message supplied by the server (or by client-side validation) wins;
// otherwise the fallback is used.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if len(apiErr.Errors) > 0 {
			return strings.Join(apiErr.Errors, "; ")
		}
		if errors.Is(apiErr.Kind, ErrNetwork) {
			return "Unable to reach the server. Check your connection and try again."
		}
	}

	return fallback
}
