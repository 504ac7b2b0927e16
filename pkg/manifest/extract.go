package manifest

import (
	"bytes"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/cperrin88/altvsync/pkg/digest"
	"github.com/cperrin88/altvsync/pkg/errors"
)

// UnknownVersion is reported when a manifest carries no usable version tag.
const UnknownVersion = "unknown"

// hashListKey names the top-level object that maps file paths to digests.
const hashListKey = "hashList"

// ExtractDigest returns the lowercase digest published for key.
//
// Well-formed JSON is searched structurally: the first member (at any depth) named key,
// or whose name ends in "/"+key, holding a valid digest wins, exact names before suffixes.
// When the document has a top-level hashList object only that object is searched.
// If the document does not parse or has no such member, the raw text is scanned for the
// first occurrence of key and the digest quoted after the following colon is used.
func ExtractDigest(doc []byte, key string) (string, error) {
	if key == "" {
		return "", errors.Wrap(errors.ErrDigestKeyNotFound, "empty key")
	}

	var tree interface{}
	if err := json.Unmarshal(doc, &tree); err == nil {
		if root, ok := tree.(map[string]interface{}); ok {
			if list, ok := root[hashListKey].(map[string]interface{}); ok {
				tree = list
			}
		}
		if d, ok := findDigest(tree, func(name string) bool { return name == key }); ok {
			return d, nil
		}
		if d, ok := findDigest(tree, func(name string) bool { return strings.HasSuffix(name, "/"+key) }); ok {
			return d, nil
		}
	}

	return scanDigest(doc, key)
}

func findDigest(node interface{}, match func(string) bool) (string, bool) {
	switch v := node.(type) {
	case map[string]interface{}:
		names := make([]string, 0, len(v))
		for name := range v {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			if s, ok := v[name].(string); ok && match(name) && digest.Valid(s) {
				return digest.Normalize(s), true
			}
		}
		for _, name := range names {
			if d, ok := findDigest(v[name], match); ok {
				return d, true
			}
		}
	case []interface{}:
		for _, item := range v {
			if d, ok := findDigest(item, match); ok {
				return d, true
			}
		}
	}
	return "", false
}

func scanDigest(doc []byte, key string) (string, error) {
	idx := bytes.Index(doc, []byte(key))
	if idx < 0 {
		return "", errors.Wrapf(errors.ErrDigestKeyNotFound, "%s", key)
	}

	start := skipSeparator(doc, idx+len(key))
	end := start + digest.Size
	if end > len(doc) {
		return "", errors.Wrapf(errors.ErrInvalidDigest, "%s: manifest truncated", key)
	}

	d := string(doc[start:end])
	if !digest.Valid(d) {
		return "", errors.Wrapf(errors.ErrInvalidDigest, "%s: %q", key, d)
	}
	return digest.Normalize(d), nil
}

// skipSeparator returns the offset of the first digest character after a key ending at pos.
// It steps over the key's closing quote, the colon and the value's opening quote, allowing
// whitespace around the colon. Characters that do not fit are left for digest validation.
func skipSeparator(doc []byte, pos int) int {
	pos = skipByte(doc, pos, '"')
	pos = skipSpace(doc, pos)
	pos = skipByte(doc, pos, ':')
	pos = skipSpace(doc, pos)
	return skipByte(doc, pos, '"')
}

func skipByte(doc []byte, pos int, b byte) int {
	if pos < len(doc) && doc[pos] == b {
		return pos + 1
	}
	return pos
}

func skipSpace(doc []byte, pos int) int {
	for pos < len(doc) && (doc[pos] == ' ' || doc[pos] == '\t' || doc[pos] == '\n' || doc[pos] == '\r') {
		pos++
	}
	return pos
}

// ExtractVersion returns the top-level "version" string of a manifest, or UnknownVersion.
func ExtractVersion(doc []byte) string {
	var m struct {
		Version interface{} `json:"version"`
	}
	if err := json.Unmarshal(doc, &m); err != nil {
		return UnknownVersion
	}
	v, ok := m.Version.(string)
	if !ok || strings.TrimSpace(v) == "" {
		return UnknownVersion
	}
	return v
}
