package request

import (
	"strings"

	"catalog-web/internal/data/entity"
)

type PostForm struct {
	Name        string `label:"Name" validate:"required"`
	Description string `label:"Description"`
}

func (f PostForm) Normalize() PostForm {
	return PostForm{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
	}
}

func PostFormFromEntity(post *entity.Post) PostForm {
	return PostForm{
		Name:        post.Name,
		Description: post.Description,
	}
}

// PostDraft is a validated post ready to be sent to the backend.
type PostDraft struct {
	Name        string
	Description string
	Image       ImagePayload
}
