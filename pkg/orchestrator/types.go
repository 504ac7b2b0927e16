//go:generate mockgen -destination=./mocks/orchestrator.go -package=mocks . ManifestResolver,Downloader,HookRunner

package orchestrator

import (
	"context"

	"github.com/cperrin88/altvsync/pkg/artifact"
	"github.com/cperrin88/altvsync/pkg/download"
	"github.com/cperrin88/altvsync/pkg/hooks"
)

// ManifestResolver is the subset of the manifest client used by the orchestrator.
type ManifestResolver interface {
	ResolveDigest(ctx context.Context, manifestURL string, key string) (string, error)
}

// Downloader handles artifact downloading.
type Downloader interface {
	Fetch(ctx context.Context, item download.Item) (download.Result, error)
}

// HookRunner executes user scripts after downloads.
type HookRunner interface {
	Execute(ctx context.Context, hookType hooks.HookType, hc hooks.HookContext) error
}

// Orchestrator ties the manifest client, the digest engine and the download manager together.
type Orchestrator struct {
	Manifest ManifestResolver
	DL       Downloader
	Scripts  HookRunner // optional post-download scripts
	Hooks    Hooks      // Hooks for progress and event notifications
}

// Event phases.
const (
	PhaseGroup       = "group"
	PhaseChecking    = "checking"
	PhaseDownloading = "downloading"
	PhaseSkipped     = "skipped"
	PhaseDownloaded  = "downloaded"
	PhaseFailed      = "failed"
	PhaseDone        = "done"
)

// Event represents a simple progress notification.
type Event struct {
	Phase string // group|checking|downloading|skipped|downloaded|failed|done
	ID    string // artifact or group name
	Msg   string
}

// Hooks carries callbacks for progress events.
// OnEvent is called from worker goroutines when Options.Concurrency > 1.
type Hooks struct {
	OnEvent func(Event)
}

// Options control orchestrator execution.
type Options struct {
	Layout      artifact.Layout
	Concurrency int // <= 1 runs sequentially
}

// Status is the outcome of one artifact in a sync.
type Status string

// Artifact statuses.
const (
	StatusSkipped    Status = "skipped"
	StatusDownloaded Status = "downloaded"
	StatusFailed     Status = "failed"
)

// Result is the per-artifact outcome of a sync.
type Result struct {
	Artifact  string `json:"artifact"`
	Group     string `json:"group"`
	LocalPath string `json:"localPath"`
	URL       string `json:"url"`
	Status    Status `json:"status"`
	Bytes     int64  `json:"bytes,omitempty"`
	Err       error  `json:"-"`
}
