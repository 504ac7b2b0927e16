package artifact

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultCDN is the public CDN the artifacts are published on.
const DefaultCDN = "https://cdn.alt-mp.com"

// manifestFile is the per-component manifest document.
const manifestFile = "update.json"

// Layout builds CDN URLs below a base URL.
type Layout struct {
	base string
}

// NewLayout validates base and returns a Layout for it.
func NewLayout(base string) (Layout, error) {
	if base == "" {
		base = DefaultCDN
	}
	u, err := url.Parse(base)
	if err != nil {
		return Layout{}, fmt.Errorf("invalid CDN URL %q: %w", base, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Layout{}, fmt.Errorf("invalid CDN URL %q: must be an absolute http(s) URL", base)
	}
	return Layout{base: strings.TrimRight(base, "/")}, nil
}

// Base returns the CDN base URL without a trailing slash.
func (l Layout) Base() string {
	return l.base
}

// componentBase is <cdn>/<component>/<branch>/<platform> for platform builds
// and <cdn>/data/<branch> for data blobs.
func (l Layout) componentBase(t Target, c Component) string {
	if c.PlatformIndependent() {
		return fmt.Sprintf("%s/%s/%s", l.base, c, t.Branch)
	}
	return fmt.Sprintf("%s/%s/%s/%s", l.base, c, t.Branch, t.Platform)
}

// ManifestURL returns the manifest document that publishes the digest of s.
func (l Layout) ManifestURL(t Target, s Spec) string {
	return l.componentBase(t, s.Component) + "/" + manifestFile
}

// ComponentManifestURL returns the manifest of a component for t.
func (l Layout) ComponentManifestURL(t Target, c Component) string {
	return l.componentBase(t, c) + "/" + manifestFile
}

// RemoteURL returns the download URL of s.
func (l Layout) RemoteURL(t Target, s Spec) (*url.URL, error) {
	if !s.Component.PlatformIndependent() && !t.Platform.Valid() {
		return nil, fmt.Errorf("unsupported platform %q for %s", t.Platform, s.Name)
	}

	var raw string
	if s.Component.PlatformIndependent() {
		raw = fmt.Sprintf("%s/%s/%s", l.componentBase(t, s.Component), s.Component, s.RemotePath)
	} else {
		raw = l.componentBase(t, s.Component) + "/" + s.RemotePath
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid artifact URL %q: %w", raw, err)
	}
	return u, nil
}
