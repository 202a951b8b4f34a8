package response

import (
	"catalog-web/internal/dto/request"
)

// DeleteTarget is the record awaiting delete confirmation.
type DeleteTarget struct {
	ID    string
	Label string
}

// ListView is a point-in-time copy of a list controller's state.
type ListView[T any] struct {
	State    string
	Loaded   bool
	Items    []T
	Total    int
	Genres   []string
	Criteria request.ListQuery
	Error    string

	DeleteTarget *DeleteTarget
	ConfirmError string
}
