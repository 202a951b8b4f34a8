package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError_IsKind(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("list movies: %w", &APIError{Kind: ErrNetwork, Cause: cause})

	assert.True(t, errors.Is(err, ErrNetwork))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrServer))

	var apiErr *APIError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "network error: connection refused", apiErr.Error())
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"server message wins", &APIError{Kind: ErrValidationFailed, Message: "Title taken", Errors: []string{"ignored"}}, "Title taken"},
		{"joined errors", &APIError{Kind: ErrValidationFailed, Errors: []string{"Title is required", "Rating is invalid"}}, "Title is required; Rating is invalid"},
		{"network", &APIError{Kind: ErrNetwork, Cause: errors.New("dial tcp")}, "Unable to reach the server. Check your connection and try again."},
		{"bare server error", &APIError{Kind: ErrServer}, "fallback"},
		{"foreign error", errors.New("boom"), "fallback"},
		{"wrapped", fmt.Errorf("get movie 1: %w", NewNotFoundError("Movie not found")), "Movie not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err, "fallback"))
		})
	}
}
