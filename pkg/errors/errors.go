// Package errors defines the error taxonomy shared by the altvsync packages and
// small helpers for adding context while keeping sentinels matchable with errors.Is.
package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath = fmt.Errorf("config file path cannot be empty")
	ErrConfigNotFound  = fmt.Errorf("config file not found")
	ErrConfigInvalid   = fmt.Errorf("config file is invalid, remove it and run the program again")
	ErrConfigEncode    = fmt.Errorf("failed to encode config")
	ErrConfigWrite     = fmt.Errorf("failed to write config file")
	ErrInvalidBranch   = fmt.Errorf("invalid branch")

	// Manifest errors.
	ErrManifestUnavailable = fmt.Errorf("manifest unavailable")
	ErrDigestKeyNotFound   = fmt.Errorf("artifact key not found in manifest")
	ErrInvalidDigest       = fmt.Errorf("invalid digest")

	// Download errors.
	ErrFetchTimeout   = fmt.Errorf("fetch timed out")
	ErrDownloadFailed = fmt.Errorf("download failed")

	// Filesystem errors.
	ErrInvalidPath  = fmt.Errorf("invalid path")
	ErrOutputLocked = fmt.Errorf("output directory is locked by another altvsync process")

	// Sync errors.
	ErrSyncFailed = fmt.Errorf("one or more artifacts failed to sync")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// ErrInvalidBranchWithDetails is a helper to create a wrapped error with the invalid branch and valid options.
func ErrInvalidBranchWithDetails(branch string, valid []string) error {
	return fmt.Errorf("%w: %q, must be one of: %v", ErrInvalidBranch, branch, valid)
}

// ErrConfigInvalidWithPath is a helper to create a config error naming the offending file.
func ErrConfigInvalidWithPath(path string, cause error) error {
	return fmt.Errorf("%s: %w: %w", path, ErrConfigInvalid, cause)
}
