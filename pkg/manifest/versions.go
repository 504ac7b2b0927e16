package manifest

import (
	"sort"

	"github.com/hashicorp/go-version"
)

// SortVersions returns tags ordered newest first. Tags that are not valid
// versions (including UnknownVersion) keep their relative order at the end.
func SortVersions(tags []string) []string {
	type parsed struct {
		tag string
		v   *version.Version
	}

	valid := make([]parsed, 0, len(tags))
	invalid := make([]string, 0)
	for _, tag := range tags {
		v, err := version.NewVersion(tag)
		if err != nil {
			invalid = append(invalid, tag)
			continue
		}
		valid = append(valid, parsed{tag: tag, v: v})
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].v.GreaterThan(valid[j].v)
	})

	out := make([]string, 0, len(tags))
	for _, p := range valid {
		out = append(out, p.tag)
	}
	return append(out, invalid...)
}

// ValidVersion reports whether tag parses as a version.
func ValidVersion(tag string) bool {
	_, err := version.NewVersion(tag)
	return err == nil
}

// Newer reports whether tag a is a strictly newer version than b.
// It is false if either tag cannot be parsed.
func Newer(a, b string) bool {
	va, err := version.NewVersion(a)
	if err != nil {
		return false
	}
	vb, err := version.NewVersion(b)
	if err != nil {
		return false
	}
	return va.GreaterThan(vb)
}
