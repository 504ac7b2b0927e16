// Package digest computes and compares the SHA-1 content digests the CDN
// publishes for every artifact.
package digest

import (
	"crypto/sha1" //nolint:gosec // the CDN manifest publishes SHA-1 digests
	"encoding/hex"
	"io"
	"os"
	"strings"

	"github.com/cperrin88/altvsync/pkg/errors"
)

// Size is the length of a hex-encoded digest.
const Size = sha1.Size * 2

// Compute streams the file at path through SHA-1 and returns the lowercase hex digest.
// A missing file yields an empty digest and no error, so it never matches a published one.
func Compute(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrap(err, "open for digest")
	}
	defer func() { _ = f.Close() }()

	return FromReader(f)
}

// FromReader hashes everything read from r.
func FromReader(r io.Reader) (string, error) {
	h := sha1.New() //nolint:gosec
	if _, err := io.Copy(h, r); err != nil {
		return "", errors.Wrap(err, "hashing")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Normalize lowercases and trims a digest string.
func Normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Valid reports whether s is exactly Size hex characters.
func Valid(s string) bool {
	if len(s) != Size {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// Equal compares two digests case-insensitively. An empty digest never matches.
func Equal(local, remote string) bool {
	local, remote = Normalize(local), Normalize(remote)
	if local == "" || remote == "" {
		return false
	}
	return local == remote
}
