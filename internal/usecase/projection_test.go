package usecase

import (
	"testing"

	"catalog-web/internal/data/entity"
	"catalog-web/internal/dto/request"

	"github.com/google/go-cmp/cmp"
)

func sampleMovies() []entity.Movie {
	return []entity.Movie{
		movie("1", "Heat", "Crime", floatPtr(4.5)),
		movie("2", "alien", "Horror", nil),
		movie("3", "Zodiac", "Crime", floatPtr(3)),
		movie("4", "Été", "Drama", floatPtr(5)),
	}
}

func TestProject(t *testing.T) {
	p := NewProjector("en")

	tests := []struct {
		name  string
		query request.ListQuery
		want  []string
	}{
		{"no criteria keeps order", request.DefaultListQuery(), []string{"Heat", "alien", "Zodiac", "Été"}},
		{"search is case-insensitive", request.ListQuery{Search: "A", Ascending: true}, []string{"Heat", "alien", "Zodiac"}},
		{"search keeps surrounding spaces", request.ListQuery{Search: "heat ", Ascending: true}, []string{}},
		{"genre is exact", request.ListQuery{Genre: "Crime", Ascending: true}, []string{"Heat", "Zodiac"}},
		{"genre is case-sensitive", request.ListQuery{Genre: "crime", Ascending: true}, []string{}},
		{"title ascending collates", request.ListQuery{SortBy: request.SortTitle, Ascending: true}, []string{"alien", "Été", "Heat", "Zodiac"}},
		{"title descending", request.ListQuery{SortBy: request.SortTitle}, []string{"Zodiac", "Heat", "Été", "alien"}},
		{"rating ascending unrated last", request.ListQuery{SortBy: request.SortRating, Ascending: true}, []string{"Zodiac", "Heat", "Été", "alien"}},
		{"rating descending unrated last", request.ListQuery{SortBy: request.SortRating}, []string{"Été", "Heat", "Zodiac", "alien"}},
		{"filter then sort", request.ListQuery{Genre: "Crime", SortBy: request.SortRating}, []string{"Heat", "Zodiac"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := labels(Project(p, sampleMovies(), tt.query))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Project() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProject_StableForEqualKeys(t *testing.T) {
	p := NewProjector("en")
	items := []entity.Movie{
		movie("1", "B", "", floatPtr(3)),
		movie("2", "A", "", floatPtr(3)),
		movie("3", "C", "", floatPtr(3)),
	}

	got := labels(Project(p, items, request.ListQuery{SortBy: request.SortRating, Ascending: true}))

	if diff := cmp.Diff([]string{"B", "A", "C"}, got); diff != "" {
		t.Errorf("equal ratings reordered (-want +got):\n%s", diff)
	}
}

func TestProject_DoesNotModifyInput(t *testing.T) {
	p := NewProjector("en")
	items := sampleMovies()

	Project(p, items, request.ListQuery{SortBy: request.SortTitle, Ascending: true})

	if diff := cmp.Diff([]string{"Heat", "alien", "Zodiac", "Été"}, labels(items)); diff != "" {
		t.Errorf("input modified (-want +got):\n%s", diff)
	}
}

func TestProject_Posts(t *testing.T) {
	p := NewProjector("en")
	posts := []entity.Post{
		{Base: entity.Base{ID: "1"}, Name: "banana"},
		{Base: entity.Base{ID: "2"}, Name: "Apple"},
		{Base: entity.Base{ID: "3"}, Name: "cherry"},
	}

	got := labels(Project(p, posts, request.ListQuery{SortBy: request.SortName, Ascending: false}))

	if diff := cmp.Diff([]string{"cherry", "banana", "Apple"}, got); diff != "" {
		t.Errorf("post sort mismatch (-want +got):\n%s", diff)
	}
}

func TestGenres(t *testing.T) {
	got := Genres(NewProjector("en"), sampleMovies())

	if diff := cmp.Diff([]string{"Crime", "Drama", "Horror"}, got); diff != "" {
		t.Errorf("Genres() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewProjector_UnknownLocale(t *testing.T) {
	got := labels(Project(NewProjector("not a locale!"), sampleMovies(), request.ListQuery{SortBy: request.SortTitle, Ascending: true}))

	if diff := cmp.Diff([]string{"alien", "Été", "Heat", "Zodiac"}, got); diff != "" {
		t.Errorf("fallback collation mismatch (-want +got):\n%s", diff)
	}
}
