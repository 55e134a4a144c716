package transport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// Deleter removes files from the server with fire-and-forget DELETE requests.
// Any response counts as success and triggers onDeleted; transport errors are
// logged at debug level and otherwise dropped.
type Deleter struct {
	base      *url.URL
	client    *http.Client
	logger    *slog.Logger
	onDeleted func(path string)

	inflight sync.WaitGroup
}

// NewDeleter creates a deleter resolving paths below the base directory.
// onDeleted is where the presentation layer refreshes its listing.
func NewDeleter(base string, onDeleted func(path string), opts ...HTTPOption) (*Deleter, error) {
	u, err := ParseTarget(base)
	if err != nil {
		return nil, err
	}
	// the target names a directory, paths resolve below it
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
		if u.RawPath != "" {
			u.RawPath += "/"
		}
	}

	// reuse the transport options so clients and loggers are configured once
	cfg := &HTTPTransport{client: http.DefaultClient, logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Deleter{
		base:      u,
		client:    cfg.client,
		logger:    cfg.logger,
		onDeleted: onDeleted,
	}, nil
}

// Delete issues DELETE for path in the background and returns immediately
func (d *Deleter) Delete(ctx context.Context, path string) {
	target, err := d.resolve(path)
	if err != nil {
		d.logger.Debug("delete skipped", "path", path, "err", err)
		return
	}

	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()

		req, err := http.NewRequestWithContext(ctx, http.MethodDelete, target, nil)
		if err != nil {
			d.logger.Debug("delete request", "path", path, "err", err)
			return
		}
		resp, err := d.client.Do(req)
		if err != nil {
			d.logger.Debug("delete failed", "path", path, "err", err)
			return
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		d.logger.Info("delete finished", "path", path, "status", resp.StatusCode)
		if d.onDeleted != nil {
			d.onDeleted(path)
		}
	}()
}

// Wait blocks until every pending delete finished
func (d *Deleter) Wait() {
	d.inflight.Wait()
}

func (d *Deleter) resolve(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse path %q: %w", path, err)
	}
	return d.base.ResolveReference(ref).String(), nil
}
