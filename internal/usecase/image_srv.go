package usecase

import (
	"encoding/base64"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"catalog-web/internal/dto/request"
	"catalog-web/internal/dto/response"
	"catalog-web/pkg/utils"

	"github.com/gabriel-vasile/mimetype"
)

// ImagePicker is the image-source half of a record form: either an uploaded
// file or a URL, never both. It is not synchronised; the owning form
// controller holds its lock around every call.
type ImagePicker struct {
	mode     request.ImageMode
	url      string
	file     *request.PendingFile
	preview  string
	existing string
	maxBytes int64
	// token increases whenever a preview started earlier must no longer land.
	token uint64
}

// NewImagePicker starts in URL mode previewing existing when the record
// already has an image, in upload mode otherwise.
func NewImagePicker(existing string, maxBytes int64) *ImagePicker {
	p := &ImagePicker{
		mode:     request.ImageModeUpload,
		existing: existing,
		maxBytes: maxBytes,
	}
	if existing != "" {
		p.mode = request.ImageModeURL
		p.url = existing
		p.preview = existing
	}
	return p
}

func (p *ImagePicker) Mode() request.ImageMode {
	return p.mode
}

// SwitchMode moves to mode and clears what belonged to the other one:
// entering URL mode drops the pending file, entering upload mode clears the
// URL text. Previews still in flight are invalidated.
func (p *ImagePicker) SwitchMode(mode request.ImageMode) {
	if mode == p.mode {
		return
	}
	p.mode = mode
	p.token++

	switch mode {
	case request.ImageModeURL:
		p.file = nil
		p.preview = p.urlPreview()
	case request.ImageModeUpload:
		p.url = ""
		p.preview = p.existing
	}
}

// SetURL records the typed URL; in URL mode it is its own preview.
// Ignored outside URL mode.
func (p *ImagePicker) SetURL(raw string) {
	if p.mode != request.ImageModeURL {
		return
	}
	p.url = strings.TrimSpace(raw)
	p.preview = p.urlPreview()
}

func (p *ImagePicker) urlPreview() string {
	if p.url != "" {
		return p.url
	}
	return p.existing
}

// BeginPreview hands out the token a file read must present on completion.
func (p *ImagePicker) BeginPreview() uint64 {
	p.token++
	return p.token
}

// CompletePreview installs a finished preview unless the token is stale or the
// picker has left upload mode meanwhile. It reports whether it was applied.
func (p *ImagePicker) CompletePreview(token uint64, file *request.PendingFile, preview string) bool {
	if token != p.token || p.mode != request.ImageModeUpload {
		return false
	}
	p.file = file
	p.preview = preview
	return true
}

// Payload is what the submission carries: the file in upload mode, the URL in
// URL mode. An unchanged existing URL is not re-sent.
func (p *ImagePicker) Payload() request.ImagePayload {
	switch p.mode {
	case request.ImageModeUpload:
		return request.ImagePayload{File: p.file}
	case request.ImageModeURL:
		if p.url != "" && p.url != p.existing {
			return request.ImagePayload{URL: p.url}
		}
	}
	return request.ImagePayload{}
}

func (p *ImagePicker) View() response.ImageView {
	view := response.ImageView{
		Mode:     p.mode,
		URL:      p.url,
		Preview:  p.preview,
		Existing: p.existing,
	}
	if p.file != nil {
		view.PendingName = p.file.Filename
	}
	return view
}

// ReadPreview reads an uploaded image (at most maxBytes) and returns it with a
// data URL suitable for an <img> preview. Non-images are rejected.
func ReadPreview(r io.Reader, filename string, maxBytes int64) (*request.PendingFile, string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, "", utils.NewValidationError("Image must be at most " + sizeLimit(maxBytes))
	}
	if len(data) == 0 {
		return nil, "", utils.NewValidationError("Selected file is empty")
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, "", utils.NewValidationError("Selected file is not an image")
	}

	contentType := strings.SplitN(mtype.String(), ";", 2)[0]
	file := &request.PendingFile{
		Filename:    filepath.Base(filename),
		ContentType: contentType,
		Data:        data,
	}
	preview := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)

	return file, preview, nil
}

func sizeLimit(n int64) string {
	if n >= 1<<20 {
		return fmt.Sprintf("%d MB", n>>20)
	}
	return fmt.Sprintf("%d KB", n>>10)
}
