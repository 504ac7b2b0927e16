package download

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cperrin88/altvsync/pkg/errors"
	"github.com/cperrin88/altvsync/pkg/fsutil"
)

// DefaultTimeout bounds a whole artifact download, connection and body included.
const DefaultTimeout = 5 * time.Minute

// ManagerImpl is a simple HTTP-based download manager. It performs one GET per
// Fetch and never retries.
type ManagerImpl struct {
	client    *http.Client
	userAgent string
}

// NewManager creates a new download manager with the given timeout and user agent.
func NewManager(timeout time.Duration, userAgent string) *ManagerImpl {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = "altvsync/1.0"
	}
	return &ManagerImpl{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch downloads a single item and moves it into place.
func (m *ManagerImpl) Fetch(ctx context.Context, item Item) (Result, error) {
	failed := Result{Outcome: OutcomeTimedOut, Path: item.Path}

	if item.URL == nil {
		return failed, fmt.Errorf("%s: nil URL: %w", item.ID, errors.ErrDownloadFailed)
	}
	if item.Path == "" || !filepath.IsAbs(item.Path) {
		return failed, fmt.Errorf("download path must be absolute: %s: %w", item.Path, errors.ErrInvalidPath)
	}

	resp, err := m.doRequest(ctx, item)
	if err != nil {
		return failed, err
	}
	defer func() { _ = resp.Body.Close() }()

	tmpPath, n, err := writeBodyToTemp(resp, item.Path)
	if err != nil {
		return failed, classify(item, err)
	}

	mode := os.FileMode(fsutil.FileModeDefault)
	if item.Executable {
		mode = fsutil.FileModeExec
	}
	if err := finalizeFile(tmpPath, item.Path, mode); err != nil {
		_ = os.Remove(tmpPath)
		return failed, err
	}

	return Result{Outcome: OutcomeSuccess, Path: item.Path, Bytes: n}, nil
}

func (m *ManagerImpl) doRequest(ctx context.Context, item Item) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, item.URL.String(), http.NoBody)
	if err != nil {
		return nil, classify(item, err)
	}
	req.Header.Set("User-Agent", m.userAgent)
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, classify(item, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%s: unexpected status code: %d: %w", item.ID, resp.StatusCode, errors.ErrDownloadFailed)
	}
	return resp, nil
}

// classify tags timeouts with ErrFetchTimeout and everything else with ErrDownloadFailed.
func classify(item Item, err error) error {
	var netErr net.Error
	if stderrors.Is(err, context.DeadlineExceeded) || (stderrors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%s: %w: %w", item.ID, errors.ErrFetchTimeout, err)
	}
	return fmt.Errorf("%s: %w: %w", item.ID, errors.ErrDownloadFailed, err)
}

// writeBodyToTemp streams the body into a temp file next to absPath, so the
// final rename stays on one filesystem. The temp file is removed on error.
func writeBodyToTemp(resp *http.Response, absPath string) (string, int64, error) {
	if err := fsutil.EnsureFileDir(absPath); err != nil {
		return "", 0, errors.Wrap(err, "could not create download dir")
	}
	tmp, err := os.CreateTemp(filepath.Dir(absPath), "dl-*.tmp")
	if err != nil {
		return "", 0, errors.Wrap(err, "could not create temp file")
	}
	tmpPath := tmp.Name()

	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", 0, errors.Wrap(err, "could not write file")
	}
	if resp.ContentLength >= 0 && n != resp.ContentLength {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", 0, fmt.Errorf("short body: got %d of %d bytes", n, resp.ContentLength)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", 0, errors.Wrap(err, "could not sync file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", 0, errors.Wrap(err, "could not close file")
	}
	return tmpPath, n, nil
}

func finalizeFile(tmpPath, absPath string, mode os.FileMode) error {
	if err := os.Chmod(tmpPath, mode); err != nil {
		return errors.Wrap(err, "could not set permissions")
	}
	if err := fsutil.Move(tmpPath, absPath); err != nil {
		return errors.Wrap(err, "could not finalize file")
	}
	return nil
}
