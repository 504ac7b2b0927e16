package download

import (
	"context"
	"net/url"
)

// Manager defines the interface for downloading a single remote artifact to a local path.
type Manager interface {
	// Fetch downloads item.URL and atomically replaces item.Path with the body.
	// On failure the returned Result has OutcomeTimedOut and item.Path is left untouched.
	Fetch(ctx context.Context, item Item) (Result, error)
}

// Item represents one remote resource to download.
type Item struct {
	ID         string   // artifact name, used in errors
	URL        *url.URL // source URL to download
	Path       string   // absolute destination path
	Executable bool     // mark the file executable after download
}

// Outcome is the result class of a fetch.
type Outcome int

const (
	// OutcomeSuccess means the destination now holds the full response body.
	OutcomeSuccess Outcome = iota
	// OutcomeTimedOut covers timeouts, transport errors and unexpected statuses.
	OutcomeTimedOut
)

// String returns a human readable outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeTimedOut:
		return "timed-out"
	default:
		return "unknown"
	}
}

// Result describes a finished fetch.
type Result struct {
	Outcome Outcome
	Path    string // destination path
	Bytes   int64  // bytes written on success
}
