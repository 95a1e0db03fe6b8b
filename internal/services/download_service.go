package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"iscript/internal/logger"
	"iscript/pkg/scripttypes"
)

// DownloadService fetches remote media over HTTP.
type DownloadService struct {
	userAgent string
	client    *http.Client
}

// NewDownloadService creates a DownloadService sending userAgent on every request.
func NewDownloadService(userAgent string, timeout time.Duration) *DownloadService {
	return &DownloadService{
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// Name returns the service name "download".
func (d *DownloadService) Name() string {
	return "download"
}

// Download streams url into destination. A partially written file is removed
// on failure.
func (d *DownloadService) Download(ctx context.Context, url string, destination string) error {
	logger.Debug("Starting download", "url", url, "destination", destination)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &scripttypes.ResourceError{Op: "download", Path: url, Err: err}
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return &scripttypes.ResourceError{Op: "download", Path: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &scripttypes.ResourceError{Op: "download", Path: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	f, err := os.Create(destination)
	if err != nil {
		return &scripttypes.ResourceError{Op: "create", Path: destination, Err: err}
	}

	written, err := io.Copy(f, resp.Body)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(destination)
		return &scripttypes.ResourceError{Op: "download", Path: url, Err: err}
	}

	logger.Debug("Finished download", "destination", destination, "bytes", written)
	return nil
}
