package wire

import (
	"catalog-web/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePost(r chi.Router, list *adaptor.PostListHandler, form *adaptor.PostFormHandler) {
	r.Route("/posts", func(r chi.Router) {
		r.Get("/", list.List)

		r.Post("/{id}/delete", list.RequestDelete)
		r.Post("/delete/confirm", list.ConfirmDelete)
		r.Post("/delete/cancel", list.CancelDelete)

		r.Get("/new", form.New)
		r.Get("/{id}/edit", form.Edit)
		r.Get("/forms/{draftID}", form.Show)
		r.Post("/forms/{draftID}", form.Submit)
		r.Post("/forms/{draftID}/mode", form.SwitchMode)
		r.Post("/forms/{draftID}/image", form.Preview)
		r.Post("/forms/{draftID}/cancel", form.Cancel)
	})
}
