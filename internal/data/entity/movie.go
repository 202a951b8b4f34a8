package entity

type Movie struct {
	Base
	Title          string   `json:"title"`
	Genre          *string  `json:"genre,omitempty"`
	Rating         *float64 `json:"rating,omitempty"`
	PosterImageURL *string  `json:"posterImageUrl,omitempty"`
}

func (m Movie) Label() string {
	return m.Title
}

func (m Movie) Category() string {
	if m.Genre == nil {
		return ""
	}
	return *m.Genre
}

func (m Movie) Score() *float64 {
	return m.Rating
}

func (m Movie) ImageURL() string {
	if m.PosterImageURL == nil {
		return ""
	}
	return *m.PosterImageURL
}
