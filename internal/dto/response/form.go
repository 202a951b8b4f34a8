package response

import (
	"catalog-web/internal/dto/request"
)

// ImageView is the image-source part of a form snapshot.
type ImageView struct {
	Mode        request.ImageMode
	URL         string
	Preview     string
	PendingName string
	Existing    string
}

// FormView is a point-in-time copy of a record form controller's state.
// F is the kind-specific field set (request.MovieForm or request.PostForm).
type FormView[F any] struct {
	RecordID string
	IsEdit   bool
	State    string
	Fields   F
	Image    ImageView
	Error    string
}
