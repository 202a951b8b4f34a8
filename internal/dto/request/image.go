package request

type ImageMode string

const (
	ImageModeUpload ImageMode = "upload"
	ImageModeURL    ImageMode = "url"
)

func ParseImageMode(s string) (ImageMode, bool) {
	switch ImageMode(s) {
	case ImageModeUpload, ImageModeURL:
		return ImageMode(s), true
	default:
		return "", false
	}
}

// PendingFile is an uploaded image held until the draft is submitted.
type PendingFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ImagePayload is the image part of a submission. At most one of File and
// URL is set; both empty means "no image change".
type ImagePayload struct {
	File *PendingFile
	URL  string
}
