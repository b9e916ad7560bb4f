// Package fetch retrieves raw snapshot bytes for candidate image records.
// Camera feeds expose snapshots either over plain HTTP or as objects in
// S3-compatible storage, so the fetcher dispatches on the URL scheme.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// maxImageBytes caps a single snapshot read. Traffic-cam stills are a few
// hundred KB; anything beyond this is a misconfigured feed.
const maxImageBytes = 32 << 20

// Fetcher retrieves the raw bytes behind an image URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// HTTPFetcher retrieves images over http(s).
type HTTPFetcher struct {
	httpClient *http.Client
}

// NewHTTPFetcher returns an HTTPFetcher. A zero timeout leaves requests
// unbounded apart from context cancellation.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{httpClient: &http.Client{Timeout: timeout}}
}

// Fetch downloads the image at rawURL.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request for %s: %v", rawURL, err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image %s: %v", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch %s returned status %s", rawURL, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read image body %s: %v", rawURL, err)
	}
	return data, nil
}

// Mux routes fetches by URL scheme: s3:// URLs go to the object-store
// fetcher when one is configured, everything else to HTTP.
type Mux struct {
	HTTP   Fetcher
	Object Fetcher
}

// Fetch dispatches on the scheme of rawURL.
func (m *Mux) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid image URL %q: %v", rawURL, err)
	}
	switch u.Scheme {
	case "s3":
		if m.Object == nil {
			return nil, fmt.Errorf("image URL %q requires object storage, none configured", rawURL)
		}
		return m.Object.Fetch(ctx, rawURL)
	case "http", "https":
		return m.HTTP.Fetch(ctx, rawURL)
	default:
		return nil, fmt.Errorf("unsupported image URL scheme %q", u.Scheme)
	}
}
