package request

import (
	"strings"

	"catalog-web/internal/data/entity"
	"catalog-web/pkg/utils"
)

// MovieForm holds the editable movie fields as typed into the browser.
// Field order is validation order.
type MovieForm struct {
	Title  string `label:"Title" validate:"required"`
	Genre  string `label:"Genre"`
	Rating string `label:"Rating" validate:"omitempty,between=1 5"`
}

func (f MovieForm) Normalize() MovieForm {
	return MovieForm{
		Title:  strings.TrimSpace(f.Title),
		Genre:  strings.TrimSpace(f.Genre),
		Rating: strings.TrimSpace(f.Rating),
	}
}

func MovieFormFromEntity(movie *entity.Movie) MovieForm {
	form := MovieForm{
		Title: movie.Title,
		Genre: movie.Category(),
	}
	if movie.Rating != nil {
		form.Rating = utils.FormatNumber(*movie.Rating)
	}
	return form
}

// MovieDraft is a validated movie ready to be sent to the backend.
// Empty Genre and nil Rating are omitted from the request.
type MovieDraft struct {
	Title  string
	Genre  string
	Rating *float64
	Image  ImagePayload
}
