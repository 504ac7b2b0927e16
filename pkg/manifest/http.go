// Package manifest fetches the per-branch, per-platform update.json documents
// from the CDN and extracts artifact digests and the release version from them.
package manifest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cperrin88/altvsync/pkg/errors"
)

// maxManifestSize bounds how much of a manifest response is read.
const maxManifestSize = 16 << 20

// HTTPClient fetches manifests over HTTP(S). Every call performs exactly one GET.
type HTTPClient struct {
	client    *http.Client
	userAgent string
}

// NewHTTPClient creates a new manifest client with the given timeout and user agent.
func NewHTTPClient(timeout time.Duration, userAgent string) *HTTPClient {
	if userAgent == "" {
		userAgent = "altvsync/1.0"
	}
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// Fetch downloads the raw manifest document.
func (hc *HTTPClient) Fetch(ctx context.Context, manifestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, manifestURL, http.NoBody)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrManifestUnavailable, "failed to create request: %v", err)
	}

	req.Header.Set("User-Agent", hc.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := hc.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrManifestUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code: %d", errors.ErrManifestUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxManifestSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", errors.ErrManifestUnavailable, err)
	}
	if len(data) > maxManifestSize {
		return nil, fmt.Errorf("%w: manifest exceeds %d bytes", errors.ErrManifestUnavailable, maxManifestSize)
	}

	return data, nil
}

// ResolveDigest implements Client.
func (hc *HTTPClient) ResolveDigest(ctx context.Context, manifestURL string, key string) (string, error) {
	doc, err := hc.Fetch(ctx, manifestURL)
	if err != nil {
		return "", err
	}
	return ExtractDigest(doc, key)
}

// ResolveVersion implements Client.
func (hc *HTTPClient) ResolveVersion(ctx context.Context, manifestURL string) string {
	doc, err := hc.Fetch(ctx, manifestURL)
	if err != nil {
		return UnknownVersion
	}
	return ExtractVersion(doc)
}
