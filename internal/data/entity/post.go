package entity

type Post struct {
	Base
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       *string `json:"imageUrl,omitempty"`
}

func (p Post) Label() string {
	return p.Name
}

// Category is always empty: posts have no genre.
func (p Post) Category() string {
	return ""
}

func (p Post) Score() *float64 {
	return nil
}

func (p Post) ImageURL() string {
	if p.Image == nil {
		return ""
	}
	return *p.Image
}
