package usecase

import (
	"errors"
	"io"
	"sync"

	"catalog-web/internal/dto/request"
	"catalog-web/pkg/utils"

	"go.uber.org/zap"
)

type FormState string

const (
	FormLoading    FormState = "loading"
	FormLoadError  FormState = "load_error"
	FormEditing    FormState = "editing"
	FormSubmitting FormState = "submitting"
	FormDone       FormState = "done"
)

var ErrFormNotEditable = errors.New("form is not editable")

// formCore is the lifecycle both record forms share:
// Loading (edit only) -> Editing -> Submitting -> Done | Editing+error.
type formCore struct {
	mu        sync.Mutex
	recordID  string
	state     FormState
	errMsg    string
	image     *ImagePicker
	loadToken uint64
	log       *zap.Logger
}

func newFormCore(recordID string, maxBytes int64, log *zap.Logger) formCore {
	state := FormEditing
	if recordID != "" {
		state = FormLoading
	}
	return formCore{
		recordID: recordID,
		state:    state,
		image:    NewImagePicker("", maxBytes),
		log:      log,
	}
}

// RecordID is the record being edited, empty for a create form.
func (f *formCore) RecordID() string {
	return f.recordID
}

func (f *formCore) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// SwitchImageMode flips between upload and URL, clearing the other mode's state.
func (f *formCore) SwitchImageMode(mode request.ImageMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != FormEditing {
		return ErrFormNotEditable
	}
	f.image.SwitchMode(mode)
	return nil
}

// SetImageURL updates the URL text (and preview) while in URL mode.
func (f *formCore) SetImageURL(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != FormEditing {
		return ErrFormNotEditable
	}
	f.image.SetURL(url)
	return nil
}

// SelectFile reads an uploaded file into a preview and keeps it for
// submission. The read happens outside the lock; if the mode changed or
// another file was picked meanwhile, the result is dropped.
func (f *formCore) SelectFile(filename string, r io.Reader) error {
	f.mu.Lock()
	if f.state != FormEditing {
		f.mu.Unlock()
		return ErrFormNotEditable
	}
	if f.image.Mode() != request.ImageModeUpload {
		f.image.SwitchMode(request.ImageModeUpload)
	}
	token := f.image.BeginPreview()
	maxBytes := f.image.maxBytes
	f.mu.Unlock()

	file, preview, err := ReadPreview(r, filename, maxBytes)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.errMsg = utils.UserMessage(err, "Failed to read the selected image")
		return err
	}
	if !f.image.CompletePreview(token, file, preview) {
		f.log.Debug("Dropping stale image preview", zap.Uint64("token", token))
		return nil
	}
	f.errMsg = ""
	return nil
}

// beginLoad moves to Loading and returns the token the fetch must present.
func (f *formCore) beginLoad() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.loadToken++
	f.state = FormLoading
	f.errMsg = ""
	return f.loadToken
}

// finishLoad applies a fetch result under the lock. fill runs only for a
// current, successful fetch and returns the record's existing image URL.
func (f *formCore) finishLoad(token uint64, err error, fallback string, fill func() string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if token != f.loadToken {
		return nil
	}
	if err != nil {
		f.state = FormLoadError
		f.errMsg = utils.UserMessage(err, fallback)
		f.log.Warn("Failed to load record", zap.String("id", f.recordID), zap.Error(err))
		return err
	}

	existing := fill()
	f.image = NewImagePicker(existing, f.image.maxBytes)
	f.state = FormEditing
	return nil
}

// beginSubmit validates (under the lock) and moves to Submitting. On a
// validation failure the form stays in Editing with the message set and the
// server is never contacted.
func (f *formCore) beginSubmit(validate func() error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != FormEditing {
		return ErrFormNotEditable
	}
	if err := validate(); err != nil {
		f.errMsg = utils.UserMessage(err, "Please check the form")
		return err
	}
	f.state = FormSubmitting
	f.errMsg = ""
	return nil
}

// finishSubmit lands in Done, or back in Editing with the error shown.
func (f *formCore) finishSubmit(err error, fallback string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.state = FormEditing
		f.errMsg = utils.UserMessage(err, fallback)
		f.log.Warn("Submit failed", zap.String("id", f.recordID), zap.Error(err))
		return
	}
	f.state = FormDone
}
