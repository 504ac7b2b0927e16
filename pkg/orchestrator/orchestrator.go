package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/cperrin88/altvsync/internal/logger"
	"github.com/cperrin88/altvsync/pkg/artifact"
	"github.com/cperrin88/altvsync/pkg/digest"
	"github.com/cperrin88/altvsync/pkg/download"
	"github.com/cperrin88/altvsync/pkg/errors"
	"github.com/cperrin88/altvsync/pkg/fsutil"
	"github.com/cperrin88/altvsync/pkg/hooks"
)

// New constructs a default Orchestrator from existing managers. Helper for wiring.
// scripts can be nil if no post-download hooks are configured.
func New(manifest ManifestResolver, dl Downloader, scripts HookRunner, h Hooks) *Orchestrator {
	return &Orchestrator{
		Manifest: manifest,
		DL:       dl,
		Scripts:  scripts,
		Hooks:    h,
	}
}

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

type job struct {
	group string
	spec  artifact.Spec
}

// Sync makes the output tree of target match the CDN for every enabled group.
// Results are returned in declared order. Per-artifact failures are reported in
// the results; the error is only set when the sync could not start.
func (o *Orchestrator) Sync(ctx context.Context, target artifact.Target, groups []artifact.Group, opts Options) ([]Result, error) {
	if o.Manifest == nil {
		return nil, fmt.Errorf("manifest client is not configured")
	}
	if o.DL == nil {
		return nil, fmt.Errorf("download manager is not configured")
	}
	if opts.Layout.Base() == "" {
		return nil, fmt.Errorf("CDN layout is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(target.OutputPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidPath, "%s: %v", target.OutputPath, err)
	}
	if err := fsutil.EnsureDir(root); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory %s", root)
	}

	var jobs []job
	for _, g := range groups {
		if !g.Enabled(target) {
			continue
		}
		emit(o.Hooks, Event{Phase: PhaseGroup, ID: g.Name})
		if err := fsutil.EnsureDirs(root, g.Dirs); err != nil {
			return nil, errors.Wrapf(err, "failed to prepare %s directories", g.Name)
		}
		for _, s := range g.Resolve(target) {
			jobs = append(jobs, job{group: g.Name, spec: s})
		}
	}

	results := make([]Result, len(jobs))
	if opts.Concurrency <= 1 {
		for i, j := range jobs {
			results[i] = o.syncOne(ctx, target, opts.Layout, root, j)
		}
	} else {
		var eg errgroup.Group
		eg.SetLimit(opts.Concurrency)
		for i, j := range jobs {
			eg.Go(func() error {
				results[i] = o.syncOne(ctx, target, opts.Layout, root, j)
				return nil
			})
		}
		_ = eg.Wait()
	}

	emit(o.Hooks, Event{Phase: PhaseDone, Msg: summarize(results)})
	return results, nil
}

// syncOne checks a single artifact and downloads it when the local copy is missing or stale.
func (o *Orchestrator) syncOne(ctx context.Context, target artifact.Target, layout artifact.Layout, root string, j job) Result {
	s := j.spec
	res := Result{
		Artifact:  s.Name,
		Group:     j.group,
		LocalPath: filepath.Join(root, filepath.FromSlash(s.LocalPath)),
	}

	u, err := layout.RemoteURL(target, s)
	if err != nil {
		return o.fail(res, err)
	}
	res.URL = u.String()

	if err := ctx.Err(); err != nil {
		return o.fail(res, err)
	}

	emit(o.Hooks, Event{Phase: PhaseChecking, ID: s.Name, Msg: res.LocalPath})

	local, err := digest.Compute(res.LocalPath)
	if err != nil {
		logger.Warn("Could not digest local file, forcing download", logger.Fields{
			"artifact": s.Name,
			"path":     res.LocalPath,
			"error":    err.Error(),
		})
		local = ""
	}

	remote, err := o.Manifest.ResolveDigest(ctx, layout.ManifestURL(target, s), s.ManifestKey)
	if err != nil {
		logger.Warn("Could not resolve remote digest, forcing download", logger.Fields{
			"artifact": s.Name,
			"key":      s.ManifestKey,
			"error":    err.Error(),
		})
		remote = ""
	}

	if digest.Equal(local, remote) {
		res.Status = StatusSkipped
		emit(o.Hooks, Event{Phase: PhaseSkipped, ID: s.Name, Msg: "up to date"})
		return res
	}

	emit(o.Hooks, Event{Phase: PhaseDownloading, ID: s.Name, Msg: res.URL})
	fetched, err := o.DL.Fetch(ctx, download.Item{
		ID:         s.Name,
		URL:        u,
		Path:       res.LocalPath,
		Executable: s.Executable,
	})
	if err != nil {
		return o.fail(res, err)
	}
	if fetched.Outcome != download.OutcomeSuccess {
		return o.fail(res, errors.Wrapf(errors.ErrDownloadFailed, "%s: %s", s.Name, fetched.Outcome))
	}

	res.Status = StatusDownloaded
	res.Bytes = fetched.Bytes
	emit(o.Hooks, Event{Phase: PhaseDownloaded, ID: s.Name, Msg: res.LocalPath})

	o.runPostDownload(ctx, target, res, remote)
	return res
}

func (o *Orchestrator) fail(res Result, err error) Result {
	res.Status = StatusFailed
	res.Err = err
	emit(o.Hooks, Event{Phase: PhaseFailed, ID: res.Artifact, Msg: err.Error()})
	return res
}

// runPostDownload runs the post-download script. Script errors never change the result.
func (o *Orchestrator) runPostDownload(ctx context.Context, target artifact.Target, res Result, remoteDigest string) {
	if o.Scripts == nil {
		return
	}
	err := o.Scripts.Execute(ctx, hooks.PostDownload, hooks.HookContext{
		ArtifactName: res.Artifact,
		ArtifactPath: res.LocalPath,
		ArtifactURL:  res.URL,
		Digest:       digest.Normalize(remoteDigest),
		Branch:       string(target.Branch),
		Platform:     target.Platform.String(),
	})
	if err != nil {
		logger.Warn("Post-download hook failed", logger.Fields{
			"artifact": res.Artifact,
			"error":    err.Error(),
		})
	}
}

func summarize(results []Result) string {
	var skipped, downloaded, failed int
	for _, r := range results {
		switch r.Status {
		case StatusSkipped:
			skipped++
		case StatusDownloaded:
			downloaded++
		case StatusFailed:
			failed++
		}
	}
	return fmt.Sprintf("%d up to date, %d downloaded, %d failed", skipped, downloaded, failed)
}

// Failed aggregates the errors of every failed result, or returns nil when none failed.
func Failed(results []Result) error {
	var merr *multierror.Error
	for _, r := range results {
		if r.Status != StatusFailed {
			continue
		}
		cause := r.Err
		if cause == nil {
			cause = errors.ErrDownloadFailed
		}
		merr = multierror.Append(merr, fmt.Errorf("%s: %w", r.Artifact, cause))
	}
	if merr == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", errors.ErrSyncFailed, merr.ErrorOrNil())
}
