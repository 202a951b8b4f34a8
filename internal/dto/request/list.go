package request

import (
	"net/url"
	"strconv"
	"strings"
)

type SortKey string

const (
	SortNone   SortKey = ""
	SortTitle  SortKey = "title"
	SortName   SortKey = "name"
	SortRating SortKey = "rating"
)

// ListQuery is the transient search/filter/sort state of a list page.
type ListQuery struct {
	Search    string
	Genre     string
	SortBy    SortKey
	Ascending bool
}

// DefaultListQuery is unfiltered, unsorted, ascending.
func DefaultListQuery() ListQuery {
	return ListQuery{Ascending: true}
}

// Normalize trims the genre. The search term is matched as typed, spaces
// included.
func (q ListQuery) Normalize() ListQuery {
	q.Genre = strings.TrimSpace(q.Genre)
	return q
}

// Params encodes the criteria for GET /movie. Empty criteria are omitted and
// the direction travels only together with a sort key.
func (q ListQuery) Params() url.Values {
	q = q.Normalize()
	params := url.Values{}
	if search := strings.TrimSpace(q.Search); search != "" {
		params.Set("search", search)
	}
	if q.Genre != "" {
		params.Set("genre", q.Genre)
	}
	if q.SortBy != SortNone {
		params.Set("sortBy", string(q.SortBy))
		params.Set("ascending", strconv.FormatBool(q.Ascending))
	}
	return params
}

// Order is the page's two-state direction control value.
func (q ListQuery) Order() string {
	if q.Ascending {
		return "asc"
	}
	return "desc"
}
