package resource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const progressChunkSize = 32 * 1024

// HTTPFetcher fetches resources over HTTP. It is the fetcher behind
// LoadTypeXHR.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates an HTTP fetcher. A nil client falls back to a
// client with a sane default timeout.
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &HTTPFetcher{client: client}
}

// Fetch downloads r.URL and reports progress as the body is streamed.
func (f *HTTPFetcher) Fetch(ctx context.Context, r *Resource, report func(Progress)) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %q: %w", r.URL, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %q: %w", r.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch %q: unexpected status %s", r.URL, resp.Status)
	}

	return readAll(resp.Body, resp.ContentLength, report)
}

// readAll drains rd in chunks, reporting cumulative progress after each read.
// total may be -1 when the size is unknown.
func readAll(rd io.Reader, total int64, report func(Progress)) ([]byte, error) {
	var data []byte
	var loaded int64
	buf := make([]byte, progressChunkSize)

	for {
		n, err := rd.Read(buf)
		if n > 0 {
			data = append(data, buf[:n]...)
			loaded += int64(n)
			if report != nil {
				report(Progress{Loaded: loaded, Total: total})
			}
		}
		if err == io.EOF {
			return data, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
