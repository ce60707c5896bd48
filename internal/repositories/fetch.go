package repositories

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// maxDocumentSize bounds a downloaded repository document.
const maxDocumentSize = 32 << 20

const userAgent = "vpmshell"

// Download fetches and parses the repository at url. When etag is set it is
// sent as If-None-Match; a 304 answer returns a nil Remote and the same etag.
func Download(ctx context.Context, client *http.Client, url string, headers map[string]string, etag string) (*Remote, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified && etag != "" {
		return nil, etag, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("%w: %s returned %s", ErrFetch, url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, "", fmt.Errorf("%w: read %s: %v", ErrFetch, url, err)
	}

	remote, err := Parse(body, url)
	if err != nil {
		return nil, "", err
	}
	return remote, resp.Header.Get("ETag"), nil
}
