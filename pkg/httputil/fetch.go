package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	fetchTimeout = 30 * time.Second

	// maxDocumentSize bounds how much of a response body is read.
	// Annotation documents are text; anything larger is a mistake.
	maxDocumentSize = 16 << 20
)

// ErrNotFound is returned when the remote resource does not exist.
var ErrNotFound = errors.New("resource not found")

// IsNotFound reports whether err means the remote resource is missing.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsURL reports whether s looks like an HTTP or HTTPS URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// FetchDocument retrieves a document body over HTTP. Network errors,
// 5xx responses, and rate limits are retried with exponential backoff;
// other failures are returned immediately.
func FetchDocument(ctx context.Context, url string) ([]byte, error) {
	client := &http.Client{Timeout: fetchTimeout}

	var data []byte
	err := RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json, application/yaml, text/plain")

		resp, err := client.Do(req)
		if err != nil {
			return &RetryableError{Err: err}
		}
		defer resp.Body.Close()

		if err := checkStatus(resp.StatusCode); err != nil {
			return err
		}

		data, err = io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
		if err != nil {
			return &RetryableError{Err: err}
		}
		if len(data) > maxDocumentSize {
			return fmt.Errorf("response exceeds %d bytes", maxDocumentSize)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500 || code == http.StatusTooManyRequests:
		return &RetryableError{Err: fmt.Errorf("status %d", code)}
	default:
		return fmt.Errorf("unexpected status %d", code)
	}
}
