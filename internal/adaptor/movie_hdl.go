package adaptor

import (
	"net/http"

	"catalog-web/internal/data/entity"
	"catalog-web/internal/dto/request"
	"catalog-web/internal/usecase"

	"go.uber.org/zap"
)

type (
	MovieListHandler = ListHandler[entity.Movie]
	MovieFormHandler = FormHandler[request.MovieForm, *entity.Movie]
)

func newMovieListHandler(session *sessionHelper, render *Renderer, log *zap.Logger) *MovieListHandler {
	return &MovieListHandler{
		kind:  "movies",
		noun:  "movie",
		title: "Movies",
		pick: func(state *usecase.ViewState) *usecase.ListController[entity.Movie] {
			return state.Movies
		},
		criteria: movieCriteria,
		session:  session,
		render:   render,
		log:      log.With(zap.String("handler", "movie_list")),
	}
}

func newMovieFormHandler(session *sessionHelper, render *Renderer, maxBytes int64, log *zap.Logger) *MovieFormHandler {
	return &MovieFormHandler{
		kind:      "movies",
		noun:      "Movie",
		page:      "movie_form",
		fileField: "posterImage",
		urlField:  "posterImageUrl",
		maxBytes:  maxBytes,
		fields: func(r *http.Request) request.MovieForm {
			return request.MovieForm{
				Title:  r.FormValue("title"),
				Genre:  r.FormValue("genre"),
				Rating: r.FormValue("rating"),
			}
		},
		open: func(state *usecase.ViewState, id string) (string, recordForm[request.MovieForm, *entity.Movie]) {
			return state.OpenMovieForm(id)
		},
		lookup: func(state *usecase.ViewState, draftID string) (recordForm[request.MovieForm, *entity.Movie], bool) {
			form, ok := state.MovieForm(draftID)
			if !ok {
				return nil, false
			}
			return form, true
		},
		close: func(state *usecase.ViewState, draftID string) {
			state.CloseMovieForm(draftID)
		},
		session: session,
		render:  render,
		log:     log.With(zap.String("handler", "movie_form")),
	}
}
