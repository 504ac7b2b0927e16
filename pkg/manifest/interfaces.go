package manifest

import "context"

// Client resolves published digests and version tags from a CDN manifest.
type Client interface {
	// ResolveDigest fetches the manifest at manifestURL and returns the lowercase
	// digest published for key. It fails if the manifest cannot be fetched or the key is absent.
	ResolveDigest(ctx context.Context, manifestURL string, key string) (string, error)

	// ResolveVersion fetches the manifest at manifestURL and returns its top-level
	// version tag, or UnknownVersion if it cannot be determined. It never fails.
	ResolveVersion(ctx context.Context, manifestURL string) string
}
