package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ratedForm struct {
	Title  string `label:"Title" validate:"required"`
	Rating string `label:"Rating" validate:"omitempty,between=1 5"`
}

func TestValidateStruct_Valid(t *testing.T) {
	for _, rating := range []string{"", "1", "4.5", "5"} {
		assert.Empty(t, ValidateStruct(ratedForm{Title: "Inception", Rating: rating}), "rating %q", rating)
	}
}

func TestValidateStruct_Messages(t *testing.T) {
	tests := []struct {
		name string
		form ratedForm
		want string
	}{
		{"missing title", ratedForm{Rating: "3"}, "Title is required"},
		{"rating above range", ratedForm{Title: "Inception", Rating: "9"}, "Rating must be between 1 and 5"},
		{"rating below range", ratedForm{Title: "Inception", Rating: "0.5"}, "Rating must be between 1 and 5"},
		{"rating not a number", ratedForm{Title: "Inception", Rating: "abc"}, "Rating must be between 1 and 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStruct(tt.form)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.want, errs[0].Message)
		})
	}
}

func TestFirstValidationError_FieldOrder(t *testing.T) {
	err := FirstValidationError(ratedForm{Rating: "9"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.Equal(t, "Title is required", UserMessage(err, ""))
}

func TestFirstValidationError_Nil(t *testing.T) {
	assert.NoError(t, FirstValidationError(ratedForm{Title: "Heat"}))
}
