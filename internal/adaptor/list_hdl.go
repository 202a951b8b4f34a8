package adaptor

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"catalog-web/internal/data/entity"
	"catalog-web/internal/dto/request"
	"catalog-web/internal/usecase"
	"catalog-web/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ListHandler serves a list page and its delete confirmation for one kind.
type ListHandler[T entity.Record] struct {
	kind     string // URL segment: "movies", "posts"
	noun     string // "movie", "post"
	title    string
	pick     func(*usecase.ViewState) *usecase.ListController[T]
	criteria func(url.Values) request.ListQuery
	session  *sessionHelper
	render   *Renderer
	log      *zap.Logger
}

// ListBody is what the list template renders.
type ListBody struct {
	Kind      string
	Noun      string
	WithGenre bool
	View      any

	// RefreshURL refetches while keeping the current criteria.
	RefreshURL string
}

// List handles GET /{kind}. Arriving without criteria (or with refresh)
// fetches the collection again; changing criteria only re-projects.
func (h *ListHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	state, err := h.session.viewState(r)
	if err != nil {
		h.log.Error("Failed to resolve view state", zap.Error(err))
		h.render.RenderError(w, http.StatusInternalServerError, h.kind, "Failed to load page")
		return
	}
	list := h.pick(state)

	query := r.URL.Query()
	list.SetCriteria(h.criteria(query))

	if !list.Loaded() || len(query) == 0 || query.Has("refresh") {
		if err := list.Load(r.Context()); err != nil {
			h.log.Warn("List load failed", zap.Error(err))
		}
	}

	view := list.Snapshot()
	h.render.Render(w, http.StatusOK, "list", Page{
		Title:   h.title,
		Kind:    h.kind,
		Flashes: h.session.flashes(w, r),
		Body: ListBody{
			Kind:       h.kind,
			Noun:       h.noun,
			WithGenre:  h.kind == "movies",
			View:       view,
			RefreshURL: refreshURL(h.kind, view.Criteria),
		},
	})
}

// RequestDelete handles POST /{kind}/{id}/delete: opens the confirmation.
func (h *ListHandler[T]) RequestDelete(w http.ResponseWriter, r *http.Request) {
	list, ok := h.list(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := list.RequestDelete(id); err != nil {
		h.log.Info("Delete requested for unknown record", zap.String("id", id), zap.Error(err))
		h.session.addFlash(w, r, utils.UserMessage(err, "Failed to delete "+h.noun))
	}

	redirect(w, r, h.listURL(list))
}

// ConfirmDelete handles POST /{kind}/delete/confirm. The typed confirm_label
// must match the record's label.
func (h *ListHandler[T]) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	list, ok := h.list(w, r)
	if !ok {
		return
	}

	ack := r.PostFormValue("confirm_label")
	err := list.ConfirmDelete(r.Context(), ack)
	switch {
	case err == nil:
		h.session.addFlash(w, r, strings.ToUpper(h.noun[:1])+h.noun[1:]+" deleted")
	case errors.Is(err, usecase.ErrNoPendingDelete):
		// Double submit or an expired view; nothing to do.
	case errors.Is(err, utils.ErrValidationFailed):
		// Mismatch; the dialog stays open with its own message.
	default:
		h.log.Warn("Delete failed", zap.Error(err))
		h.session.addFlash(w, r, utils.UserMessage(err, "Failed to delete "+h.noun))
	}

	redirect(w, r, h.listURL(list))
}

// CancelDelete handles POST /{kind}/delete/cancel.
func (h *ListHandler[T]) CancelDelete(w http.ResponseWriter, r *http.Request) {
	list, ok := h.list(w, r)
	if !ok {
		return
	}

	list.CancelDelete()
	redirect(w, r, h.listURL(list))
}

func (h *ListHandler[T]) list(w http.ResponseWriter, r *http.Request) (*usecase.ListController[T], bool) {
	state, err := h.session.viewState(r)
	if err != nil {
		h.log.Error("Failed to resolve view state", zap.Error(err))
		h.render.RenderError(w, http.StatusInternalServerError, h.kind, "Failed to load page")
		return nil, false
	}
	return h.pick(state), true
}

// listURL returns to the list with its current criteria, so the redirect
// re-projects rather than re-fetching.
func (h *ListHandler[T]) listURL(list *usecase.ListController[T]) string {
	query := encodeCriteria(list.Snapshot().Criteria)
	if query == "" {
		// A bare URL would trigger a reload; keep the current collection.
		query = "order=asc"
	}
	return "/" + h.kind + "?" + query
}

func refreshURL(kind string, q request.ListQuery) string {
	query := "refresh=1"
	if criteria := encodeCriteria(q); criteria != "" {
		query += "&" + criteria
	}
	return "/" + kind + "?" + query
}

// encodeCriteria renders criteria as the list page's own query string.
func encodeCriteria(q request.ListQuery) string {
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Genre != "" {
		values.Set("genre", q.Genre)
	}
	if q.SortBy != request.SortNone {
		values.Set("sortBy", string(q.SortBy))
		values.Set("order", q.Order())
	}
	return values.Encode()
}

func movieCriteria(values url.Values) request.ListQuery {
	q := request.DefaultListQuery()
	q.Search = values.Get("search")
	q.Genre = values.Get("genre")
	switch request.SortKey(values.Get("sortBy")) {
	case request.SortTitle:
		q.SortBy = request.SortTitle
	case request.SortRating:
		q.SortBy = request.SortRating
	}
	q.Ascending = values.Get("order") != "desc"
	return q.Normalize()
}

// Posts always sort by name; only the direction is selectable.
func postCriteria(values url.Values) request.ListQuery {
	q := request.DefaultListQuery()
	q.Search = values.Get("search")
	q.SortBy = request.SortName
	q.Ascending = values.Get("order") != "desc"
	return q.Normalize()
}
