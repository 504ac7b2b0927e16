package artifact

import (
	"strings"

	"github.com/cperrin88/altvsync/pkg/platform"
)

// Branch is a release channel on the CDN.
type Branch string

// Published branches.
const (
	BranchRelease Branch = "release"
	BranchRC      Branch = "rc"
	BranchDev     Branch = "dev"
)

// ValidBranches returns the closed set of branches, default first.
func ValidBranches() []Branch {
	return []Branch{BranchRelease, BranchRC, BranchDev}
}

// ValidBranchNames returns ValidBranches as strings.
func ValidBranchNames() []string {
	out := make([]string, 0, 3)
	for _, b := range ValidBranches() {
		out = append(out, string(b))
	}
	return out
}

// ParseBranch normalizes s and reports whether it names a published branch.
func ParseBranch(s string) (Branch, bool) {
	b := Branch(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range ValidBranches() {
		if b == v {
			return b, true
		}
	}
	return "", false
}

// Features are the per-group enable flags of a sync target.
type Features struct {
	Server     bool
	Voice      bool
	CSharp     bool
	JS         bool
	JSByteCode bool
}

// Target is the resolved configuration of one run. It is built once and never mutated.
type Target struct {
	Branch     Branch
	Platform   platform.Platform
	OutputPath string
	Features   Features
}
