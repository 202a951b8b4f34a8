package wire

import (
	"catalog-web/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, list *adaptor.MovieListHandler, form *adaptor.MovieFormHandler) {
	r.Route("/movies", func(r chi.Router) {
		r.Get("/", list.List)

		// Delete confirmation
		r.Post("/{id}/delete", list.RequestDelete)
		r.Post("/delete/confirm", list.ConfirmDelete)
		r.Post("/delete/cancel", list.CancelDelete)

		// Create / edit drafts
		r.Get("/new", form.New)
		r.Get("/{id}/edit", form.Edit)
		r.Get("/forms/{draftID}", form.Show)
		r.Post("/forms/{draftID}", form.Submit)
		r.Post("/forms/{draftID}/mode", form.SwitchMode)
		r.Post("/forms/{draftID}/image", form.Preview)
		r.Post("/forms/{draftID}/cancel", form.Cancel)
	})
}
