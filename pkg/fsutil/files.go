package fsutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
)

// Move moves a file from src to dst, replacing dst if it exists.
// It first attempts to use os.Rename for atomic operation.
// If that fails due to cross-filesystem boundaries, it falls back to copy + delete.
func Move(src, dst string) error {
	if src == "" || dst == "" {
		return fmt.Errorf("source and destination paths cannot be empty")
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source %s: %w", src, err)
	}
	if srcInfo.IsDir() {
		return fmt.Errorf("source %s is a directory", src)
	}

	if err := EnsureFileDir(dst); err != nil {
		return fmt.Errorf("failed to create destination directory %s: %w", filepath.Dir(dst), err)
	}

	err = os.Rename(src, dst)
	if err == nil {
		return nil
	}

	if !isCrossFilesystemError(err) {
		return fmt.Errorf("failed to rename %s to %s: %w", src, dst, err)
	}

	return moveFile(src, dst, srcInfo.Mode())
}

// isCrossFilesystemError determines if an error from os.Rename indicates
// a cross-filesystem boundary issue that requires fallback to copy+delete.
func isCrossFilesystemError(err error) bool {
	if err == nil {
		return false
	}

	var linkError *os.LinkError
	if errors.As(err, &linkError) {
		if errno, ok := linkError.Err.(syscall.Errno); ok {
			return errno == syscall.EXDEV
		}
	}

	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return isCrossFilesystemError(pathErr.Err)
	}

	// EXDEV is not reported as a syscall.Errno everywhere
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "cross-device") || strings.Contains(errMsg, "cross device") {
		return true
	}
	if runtime.GOOS == "windows" {
		return strings.Contains(errMsg, "not same device")
	}

	return false
}

// moveFile copies src next to dst and renames it into place, so dst is never
// observed half-written even across filesystems.
func moveFile(src, dst string, mode os.FileMode) error {
	staging := dst + ".moving"
	if err := Copy(src, staging); err != nil {
		_ = os.Remove(staging)
		return fmt.Errorf("failed to copy file %s to %s: %w", src, dst, err)
	}
	if err := os.Chmod(staging, mode); err != nil {
		_ = os.Remove(staging)
		return fmt.Errorf("failed to set permissions on %s: %w", staging, err)
	}
	if err := os.Rename(staging, dst); err != nil {
		_ = os.Remove(staging)
		return fmt.Errorf("failed to rename %s to %s: %w", staging, dst, err)
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("failed to remove source file %s after copy: %w", src, err)
	}
	return nil
}

// Copy copies the contents of srcFile to dstFile.
func Copy(srcFile, dstFile string) error {
	src, err := os.Open(srcFile)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", srcFile, err)
	}
	defer src.Close()

	dst, err := os.Create(dstFile)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", dstFile, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("failed to copy from %s to %s: %w", srcFile, dstFile, err)
	}
	if err := dst.Sync(); err != nil {
		_ = dst.Close()
		return fmt.Errorf("failed to sync %s: %w", dstFile, err)
	}

	return dst.Close()
}
