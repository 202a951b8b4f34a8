package adaptor

import (
	"context"
	"errors"
	"io"
	"net/http"

	"catalog-web/internal/dto/request"
	"catalog-web/internal/dto/response"
	"catalog-web/internal/usecase"
	"catalog-web/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// recordForm is what the movie and post form controllers have in common.
// F is the field set, R the saved record.
type recordForm[F any, R any] interface {
	Load(ctx context.Context) error
	SetFields(form F) error
	SwitchImageMode(mode request.ImageMode) error
	SetImageURL(url string) error
	SelectFile(filename string, r io.Reader) error
	Submit(ctx context.Context) (R, error)
	Snapshot() response.FormView[F]
}

// FormHandler serves the create/edit pages of one kind. Each open form is a
// draft addressed by its own id, so several tabs do not share state.
type FormHandler[F any, R any] struct {
	kind      string // URL segment: "movies", "posts"
	noun      string // "Movie", "Post"
	page      string // template name
	fileField string
	urlField  string
	maxBytes  int64

	fields func(r *http.Request) F
	open   func(state *usecase.ViewState, id string) (string, recordForm[F, R])
	lookup func(state *usecase.ViewState, draftID string) (recordForm[F, R], bool)
	close  func(state *usecase.ViewState, draftID string)

	session *sessionHelper
	render  *Renderer
	log     *zap.Logger
}

// FormBody is what the form templates render.
type FormBody[F any] struct {
	Kind      string
	Noun      string
	Action    string
	FileField string
	URLField  string
	View      response.FormView[F]
}

// New handles GET /{kind}/new.
func (h *FormHandler[F, R]) New(w http.ResponseWriter, r *http.Request) {
	state, ok := h.state(w, r)
	if !ok {
		return
	}

	draftID, _ := h.open(state, "")
	redirect(w, r, h.formURL(draftID))
}

// Edit handles GET /{kind}/{id}/edit: loads the record into a new draft.
// A failed load still opens the draft; the page shows the error.
func (h *FormHandler[F, R]) Edit(w http.ResponseWriter, r *http.Request) {
	state, ok := h.state(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	draftID, form := h.open(state, id)
	if err := form.Load(r.Context()); err != nil {
		h.log.Warn("Failed to load record for editing", zap.String("id", id), zap.Error(err))
	}

	redirect(w, r, h.formURL(draftID))
}

// Show handles GET /{kind}/forms/{draftID}.
func (h *FormHandler[F, R]) Show(w http.ResponseWriter, r *http.Request) {
	draftID, form, ok := h.form(w, r)
	if !ok {
		return
	}

	view := form.Snapshot()
	title := "New " + h.noun
	if view.IsEdit {
		title = "Edit " + h.noun
	}

	status := http.StatusOK
	if view.State == string(usecase.FormLoadError) {
		status = http.StatusBadGateway
	}

	h.render.Render(w, status, h.page, Page{
		Title:   title,
		Kind:    h.kind,
		Flashes: h.session.flashes(w, r),
		Body: FormBody[F]{
			Kind:      h.kind,
			Noun:      h.noun,
			Action:    h.formURL(draftID),
			FileField: h.fileField,
			URLField:  h.urlField,
			View:      view,
		},
	})
}

// SwitchMode handles POST /{kind}/forms/{draftID}/mode.
func (h *FormHandler[F, R]) SwitchMode(w http.ResponseWriter, r *http.Request) {
	draftID, form, ok := h.form(w, r)
	if !ok {
		return
	}
	if !h.capture(w, r, form) {
		return
	}

	mode, valid := request.ParseImageMode(r.FormValue("mode"))
	if !valid {
		utils.ResponseBadRequest(w, "Unknown image mode")
		return
	}
	if err := form.SwitchImageMode(mode); err != nil {
		h.log.Debug("Mode switch ignored", zap.Error(err))
	}

	redirect(w, r, h.formURL(draftID))
}

// Preview handles POST /{kind}/forms/{draftID}/image: reads the picked file
// into a preview without submitting.
func (h *FormHandler[F, R]) Preview(w http.ResponseWriter, r *http.Request) {
	draftID, form, ok := h.form(w, r)
	if !ok {
		return
	}
	if !h.capture(w, r, form) {
		return
	}
	_ = h.selectFile(r, form)

	redirect(w, r, h.formURL(draftID))
}

// Submit handles POST /{kind}/forms/{draftID}. Success returns to the list
// (which refetches); failure redisplays the form with the values kept.
func (h *FormHandler[F, R]) Submit(w http.ResponseWriter, r *http.Request) {
	draftID, form, ok := h.form(w, r)
	if !ok {
		return
	}
	if !h.capture(w, r, form) {
		return
	}
	if err := h.selectFile(r, form); err != nil {
		// The picked file was rejected; show why instead of submitting without it.
		redirect(w, r, h.formURL(draftID))
		return
	}

	if _, err := form.Submit(r.Context()); err != nil {
		if !errors.Is(err, utils.ErrValidationFailed) {
			h.log.Warn("Submit failed", zap.String("draft_id", draftID), zap.Error(err))
		}
		redirect(w, r, h.formURL(draftID))
		return
	}

	state, ok := h.state(w, r)
	if !ok {
		return
	}
	h.close(state, draftID)
	h.session.addFlash(w, r, h.noun+" saved")
	redirect(w, r, "/"+h.kind)
}

// Cancel handles POST /{kind}/forms/{draftID}/cancel.
func (h *FormHandler[F, R]) Cancel(w http.ResponseWriter, r *http.Request) {
	state, ok := h.state(w, r)
	if !ok {
		return
	}

	h.close(state, chi.URLParam(r, "draftID"))
	redirect(w, r, "/"+h.kind)
}

func (h *FormHandler[F, R]) state(w http.ResponseWriter, r *http.Request) (*usecase.ViewState, bool) {
	state, err := h.session.viewState(r)
	if err != nil {
		h.log.Error("Failed to resolve view state", zap.Error(err))
		h.render.RenderError(w, http.StatusInternalServerError, h.kind, "Failed to load page")
		return nil, false
	}
	return state, true
}

// form resolves the draft named in the URL. An unknown or expired draft sends
// the browser back to the list.
func (h *FormHandler[F, R]) form(w http.ResponseWriter, r *http.Request) (string, recordForm[F, R], bool) {
	state, ok := h.state(w, r)
	if !ok {
		return "", nil, false
	}

	draftID := chi.URLParam(r, "draftID")
	form, found := h.lookup(state, draftID)
	if !found {
		h.session.addFlash(w, r, "This form has expired. Please start again.")
		redirect(w, r, "/"+h.kind)
		return "", nil, false
	}
	return draftID, form, true
}

// capture parses the posted form and applies the typed fields and URL, so
// that every action keeps what the user has entered so far.
func (h *FormHandler[F, R]) capture(w http.ResponseWriter, r *http.Request, form recordForm[F, R]) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1<<20)
	if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ResponseHTMLError(w, http.StatusRequestEntityTooLarge, "The selected image is too large")
			return false
		}
		utils.ResponseBadRequest(w, "Invalid form submission")
		return false
	}

	if err := form.SetFields(h.fields(r)); err != nil {
		h.log.Debug("Field update ignored", zap.Error(err))
	}
	if _, posted := r.Form[h.urlField]; posted {
		if err := form.SetImageURL(r.FormValue(h.urlField)); err != nil {
			h.log.Debug("URL update ignored", zap.Error(err))
		}
	}
	return true
}

// selectFile previews the uploaded file, if one was picked.
func (h *FormHandler[F, R]) selectFile(r *http.Request, form recordForm[F, R]) error {
	file, header, err := r.FormFile(h.fileField)
	if err != nil {
		return nil
	}
	defer file.Close()

	if err := form.SelectFile(header.Filename, file); err != nil {
		if errors.Is(err, usecase.ErrFormNotEditable) {
			return nil
		}
		h.log.Info("Rejected image upload", zap.String("filename", header.Filename), zap.Error(err))
		return err
	}
	return nil
}

func (h *FormHandler[F, R]) formURL(draftID string) string {
	return "/" + h.kind + "/forms/" + draftID
}
