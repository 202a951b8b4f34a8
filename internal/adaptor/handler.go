package adaptor

import (
	"catalog-web/internal/usecase"
	"catalog-web/pkg/utils"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

type Handler struct {
	Movies    *MovieListHandler
	MovieForm *MovieFormHandler
	Posts     *PostListHandler
	PostForm  *PostFormHandler
}

func NewHandler(
	service *usecase.Service,
	store sessions.Store,
	render *Renderer,
	config *utils.Config,
	log *zap.Logger,
) *Handler {
	session := &sessionHelper{
		store: store,
		views: service.Views,
		log:   log.With(zap.String("handler", "session")),
	}
	maxBytes := config.API.MaxUploadBytes

	return &Handler{
		Movies:    newMovieListHandler(session, render, log),
		MovieForm: newMovieFormHandler(session, render, maxBytes, log),
		Posts:     newPostListHandler(session, render, log),
		PostForm:  newPostFormHandler(session, render, maxBytes, log),
	}
}
