package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/gabriel-vasile/mimetype"

	"github.com/ytget/hfs-uploader/internal/model"
	"github.com/ytget/hfs-uploader/internal/upload"
)

// Multipart constants
const (
	// FieldName is the form field every file is posted under
	FieldName = "upload"

	// SniffLength is how many leading bytes are read for content detection
	SniffLength = 512

	// DefaultContentType is used when neither content nor extension identify the file
	DefaultContentType = "application/octet-stream"
)

// StatusError is returned in strict mode when the server answers with an error status
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server responded %s", e.Status)
}

// HTTPOption configures an HTTPTransport
type HTTPOption func(*HTTPTransport)

// WithClient replaces the HTTP client. Its redirect policy is kept as is.
func WithClient(client *http.Client) HTTPOption {
	return func(t *HTTPTransport) {
		if client != nil {
			t.client = client
		}
	}
}

// WithStrictStatus treats HTTP status codes >= 400 as upload failures
func WithStrictStatus(strict bool) HTTPOption {
	return func(t *HTTPTransport) {
		t.strictStatus = strict
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) HTTPOption {
	return func(t *HTTPTransport) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// HTTPTransport posts each file as multipart/form-data to one target URL
type HTTPTransport struct {
	target       *url.URL
	client       *http.Client
	strictStatus bool
	logger       *slog.Logger
}

var _ upload.Transport = (*HTTPTransport)(nil)

// NewHTTPTransport creates a transport posting to target
func NewHTTPTransport(target string, opts ...HTTPOption) (*HTTPTransport, error) {
	u, err := ParseTarget(target)
	if err != nil {
		return nil, err
	}

	t := &HTTPTransport{
		target: u,
		client: &http.Client{
			// The server answers a POST with a redirect back to the listing;
			// that redirect is the response we were waiting for.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Target returns the upload URL
func (t *HTTPTransport) Target() string {
	return t.target.String()
}

// Upload sends file in a single POST request and reports body progress
func (t *HTTPTransport) Upload(ctx context.Context, file model.SelectedFile, onProgress upload.ProgressFunc) error {
	content, err := file.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", file.Name, err)
	}
	defer content.Close()

	head := make([]byte, SniffLength)
	n, err := io.ReadFull(content, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fmt.Errorf("read %s: %w", file.Name, err)
	}
	head = head[:n]

	prefix, suffix, boundary, err := multipartFrame(file.Name, DetectContentType(file.Name, head))
	if err != nil {
		return err
	}

	total := model.UnknownSize
	if file.SizeKnown() {
		total = int64(len(prefix)) + file.Size + int64(len(suffix))
	}

	body := &countingReader{
		r:          io.MultiReader(bytes.NewReader(prefix), bytes.NewReader(head), content, bytes.NewReader(suffix)),
		total:      total,
		onProgress: onProgress,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.target.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "multipart/form-data; boundary="+boundary)
	req.ContentLength = total
	if total < 0 {
		req.ContentLength = -1
	}

	if onProgress != nil {
		onProgress(0, total)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", file.Name, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	t.logger.Debug("upload response", "file", file.Name, "status", resp.StatusCode, "sent", body.Sent())

	if t.strictStatus && resp.StatusCode >= http.StatusBadRequest {
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return nil
}

// DetectContentType sniffs head with mimetype and falls back to the file extension
func DetectContentType(name string, head []byte) string {
	if len(head) > 0 {
		if mt := mimetype.Detect(head); mt != nil && !mt.Is(DefaultContentType) {
			return mt.String()
		}
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	return DefaultContentType
}

// ParseTarget validates an absolute http(s) URL
func ParseTarget(target string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(target))
	if err != nil {
		return nil, fmt.Errorf("parse target %q: %w", target, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("target %q: scheme must be http or https", target)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("target %q: missing host", target)
	}
	return u, nil
}

// multipartFrame renders the bytes around a single file part so the body can
// be streamed with a known length.
func multipartFrame(filename, contentType string) (prefix, suffix []byte, boundary string, err error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
		"name":     FieldName,
		"filename": filename,
	}))
	h.Set("Content-Type", contentType)
	if _, err := mw.CreatePart(h); err != nil {
		return nil, nil, "", fmt.Errorf("create multipart part: %w", err)
	}
	split := buf.Len()
	if err := mw.Close(); err != nil {
		return nil, nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	data := buf.Bytes()
	prefix = append([]byte(nil), data[:split]...)
	suffix = append([]byte(nil), data[split:]...)
	return prefix, suffix, mw.Boundary(), nil
}

// countingReader reports cumulative bytes read to onProgress
type countingReader struct {
	r          io.Reader
	sent       atomic.Int64
	total      int64
	onProgress upload.ProgressFunc
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		sent := c.sent.Add(int64(n))
		if c.onProgress != nil {
			c.onProgress(sent, c.total)
		}
	}
	return n, err
}

func (c *countingReader) Sent() int64 {
	return c.sent.Load()
}
