package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"catalog-web/internal/dto/request"
	"catalog-web/internal/dto/response"
	"catalog-web/pkg/backend"
	"catalog-web/pkg/utils"

	"github.com/microcosm-cc/bluemonday"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const maxResponseBytes = 8 << 20

var (
	backendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_backend_requests_total",
			Help: "Calls made to the catalog REST backend.",
		},
		[]string{"resource", "operation", "outcome"},
	)

	backendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_backend_request_duration_seconds",
			Help:    "Catalog REST backend call duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource", "operation"},
	)
)

// apiClient is the transport shared by every resource client: it builds
// requests, decodes envelopes and classifies transport failures.
type apiClient struct {
	doer     backend.Doer
	baseURL  string
	resource string
	strip    *bluemonday.Policy
	log      *zap.Logger
}

func newAPIClient(doer backend.Doer, baseURL, resource string, log *zap.Logger) *apiClient {
	return &apiClient{
		doer:     doer,
		baseURL:  strings.TrimRight(baseURL, "/"),
		resource: resource,
		strip:    bluemonday.StrictPolicy(),
		log:      log,
	}
}

// call describes one backend request.
type call struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

// reply is a decoded backend answer.
type reply[T any] struct {
	status   int
	envelope response.Envelope[T]
}

// send performs one call. It fails only when no envelope could be obtained
// (transport failure or an undecodable body); a decoded envelope with
// success=false is returned for the caller to classify.
func send[T any](ctx context.Context, c *apiClient, in call) (*reply[T], error) {
	start := time.Now()
	outcome := "success"
	defer func() {
		backendRequestsTotal.WithLabelValues(c.resource, in.op, outcome).Inc()
		backendRequestDuration.WithLabelValues(c.resource, in.op).Observe(time.Since(start).Seconds())
	}()

	target := c.baseURL + in.path
	if len(in.query) > 0 {
		target += "?" + in.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, in.method, target, in.body)
	if err != nil {
		outcome = "network_error"
		return nil, &utils.APIError{Kind: utils.ErrNetwork, Cause: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if in.contentType != "" {
		req.Header.Set("Content-Type", in.contentType)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		outcome = "network_error"
		c.log.Warn("Backend unreachable",
			zap.String("operation", in.op),
			zap.String("method", in.method),
			zap.String("path", in.path),
			zap.Error(err),
		)
		return nil, &utils.APIError{Kind: utils.ErrNetwork, Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		outcome = "network_error"
		return nil, &utils.APIError{Kind: utils.ErrNetwork, Status: resp.StatusCode, Cause: fmt.Errorf("read response: %w", err)}
	}

	out := &reply[T]{status: resp.StatusCode}
	ok2xx := resp.StatusCode >= 200 && resp.StatusCode < 300

	if len(bytes.TrimSpace(raw)) == 0 {
		if ok2xx {
			// 204 and friends: nothing to decode, nothing went wrong.
			out.envelope.Success = true
			return out, nil
		}
		outcome = "failure"
		return nil, c.statusError(resp.StatusCode, "")
	}

	if err := json.Unmarshal(raw, &out.envelope); err != nil {
		outcome = "decode_error"
		c.log.Warn("Undecodable backend response",
			zap.String("operation", in.op),
			zap.Int("status", resp.StatusCode),
			zap.Error(err),
		)
		if ok2xx {
			return nil, &utils.APIError{Kind: utils.ErrServer, Status: resp.StatusCode,
				Message: "Unexpected response from server", Cause: err}
		}
		return nil, c.statusError(resp.StatusCode, c.plainText(raw))
	}

	if !ok2xx {
		// A non-2xx status is a failure whatever the envelope says.
		out.envelope.Success = false
	}
	if !out.envelope.Success {
		outcome = "failure"
		c.log.Info("Backend reported failure",
			zap.String("operation", in.op),
			zap.Int("status", resp.StatusCode),
			zap.String("message", out.envelope.Message),
			zap.Strings("errors", out.envelope.Errors),
		)
	}

	return out, nil
}

func (c *apiClient) statusError(status int, detail string) error {
	kind := utils.ErrServer
	if status == http.StatusNotFound {
		kind = utils.ErrNotFound
	}
	message := fmt.Sprintf("Server responded with status %d", status)
	if detail != "" {
		message += ": " + detail
	}
	return &utils.APIError{Kind: kind, Status: status, Message: message}
}

// plainText reduces an error body (often an HTML page from a proxy) to a
// short line of text.
func (c *apiClient) plainText(raw []byte) string {
	text := html.UnescapeString(c.strip.Sanitize(string(raw)))
	return utils.Truncate(strings.Join(strings.Fields(text), " "), 200)
}

// failure turns a decoded non-success envelope into an error of the given kind.
func failure[T any](r *reply[T], kind error, fallback string) error {
	message := r.envelope.Message
	if message == "" && len(r.envelope.Errors) == 0 {
		message = fallback
	}
	return &utils.APIError{
		Kind:    kind,
		Status:  r.status,
		Message: message,
		Errors:  r.envelope.Errors,
	}
}

// multipartForm collects form fields, leaving out empty ones: the backend
// treats a missing field as "not provided", which differs from "cleared".
type multipartForm struct {
	buf    bytes.Buffer
	writer *multipart.Writer
	err    error
}

func newMultipartForm() *multipartForm {
	f := &multipartForm{}
	f.writer = multipart.NewWriter(&f.buf)
	return f
}

// Field writes name=value unless value is empty.
func (f *multipartForm) Field(name, value string) {
	if f.err != nil || value == "" {
		return
	}
	f.err = f.writer.WriteField(name, value)
}

// File writes a file part unless file is nil.
func (f *multipartForm) File(name string, file *request.PendingFile) {
	if f.err != nil || file == nil {
		return
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(name), escapeQuotes(file.Filename)))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := f.writer.CreatePart(header)
	if err != nil {
		f.err = err
		return
	}
	_, f.err = part.Write(file.Data)
}

// Image writes whichever half of the payload is set, under the kind's field names.
func (f *multipartForm) Image(fileField, urlField string, image request.ImagePayload) {
	if image.File != nil {
		f.File(fileField, image.File)
		return
	}
	f.Field(urlField, image.URL)
}

// Close finalises the body.
func (f *multipartForm) Close() (io.Reader, string, error) {
	if f.err != nil {
		return nil, "", fmt.Errorf("encode form: %w", f.err)
	}
	if err := f.writer.Close(); err != nil {
		return nil, "", fmt.Errorf("encode form: %w", err)
	}
	return &f.buf, f.writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
