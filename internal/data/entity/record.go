package entity

// Record is what the list and form controllers need from a movie or a post.
type Record interface {
	RecordID() string
	// Label is the display field: a movie's title, a post's name.
	Label() string
	// Category is the filterable genre; empty for kinds without one.
	Category() string
	// Score is the rating, nil when absent or not applicable.
	Score() *float64
	ImageURL() string
}
