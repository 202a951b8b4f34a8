package usecase

import (
	"slices"
	"strings"

	"catalog-web/internal/data/entity"
	"catalog-web/internal/dto/request"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Projector derives the visible list from a loaded collection.
type Projector struct {
	tag language.Tag
}

// NewProjector builds a projector collating by locale (BCP 47). Unknown
// locales fall back to English.
func NewProjector(locale string) *Projector {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Projector{tag: tag}
}

// A collator keeps scratch buffers, so each projection gets its own.
func (p *Projector) collator() *collate.Collator {
	return collate.New(p.tag)
}

// Project filters items by q and sorts them. The input is never modified.
func Project[T entity.Record](p *Projector, items []T, q request.ListQuery) []T {
	q = q.Normalize()
	needle := strings.ToLower(q.Search)

	out := make([]T, 0, len(items))
	for _, item := range items {
		if needle != "" && !strings.Contains(strings.ToLower(item.Label()), needle) {
			continue
		}
		if q.Genre != "" && item.Category() != q.Genre {
			continue
		}
		out = append(out, item)
	}

	switch q.SortBy {
	case request.SortTitle, request.SortName:
		col := p.collator()
		slices.SortStableFunc(out, func(a, b T) int {
			c := col.CompareString(a.Label(), b.Label())
			if !q.Ascending {
				c = -c
			}
			return c
		})
	case request.SortRating:
		slices.SortStableFunc(out, func(a, b T) int {
			return compareScores(a.Score(), b.Score(), q.Ascending)
		})
	}

	return out
}

// compareScores orders by rating; unrated records go last in both directions.
func compareScores(a, b *float64, ascending bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	c := 0
	if *a < *b {
		c = -1
	} else if *a > *b {
		c = 1
	}
	if !ascending {
		c = -c
	}
	return c
}

// Genres lists the distinct non-empty categories of items, collated.
func Genres[T entity.Record](p *Projector, items []T) []string {
	seen := make(map[string]bool)
	genres := []string{}
	for _, item := range items {
		g := item.Category()
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		genres = append(genres, g)
	}

	col := p.collator()
	slices.SortFunc(genres, col.CompareString)
	return genres
}
