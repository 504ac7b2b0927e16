// Package artifact declares the synchronized artifacts: their identity on the CDN,
// where they live locally, and the rules that decide whether they are synced.
package artifact

import (
	"github.com/cperrin88/altvsync/pkg/platform"
)

// Component is the top-level CDN directory an artifact is published under.
type Component string

// CDN components.
const (
	ComponentServer     Component = "server"
	ComponentVoice      Component = "voice-server"
	ComponentCSharp     Component = "coreclr-module"
	ComponentJS         Component = "js-module"
	ComponentJSByteCode Component = "js-bytecode-module"
	ComponentData       Component = "data"
)

// PlatformIndependent reports whether the component is shared by every platform.
func (c Component) PlatformIndependent() bool {
	return c == ComponentData
}

// Predicate decides whether a group or artifact applies to a target.
type Predicate func(Target) bool

// Spec is the identity of one syncable file.
type Spec struct {
	Name        string    // display name
	ManifestKey string    // key the digest is published under
	LocalPath   string    // slash separated, relative to the output root
	RemotePath  string    // relative to the component base on the CDN
	Component   Component // CDN component
	Executable  bool      // installed with the executable bit
	When        Predicate // optional; nil means always
}

// Applies reports whether s is synced for t.
func (s Spec) Applies(t Target) bool {
	return s.When == nil || s.When(t)
}

// Group is a named set of artifacts enabled as a unit.
type Group struct {
	Name        string
	Dirs        []string // output subdirectories created before digesting
	EnabledWhen Predicate
	Specs       func(p platform.Platform) []Spec
}

// Enabled reports whether the group is synced for t.
func (g Group) Enabled(t Target) bool {
	return g.EnabledWhen != nil && g.EnabledWhen(t)
}

// Resolve returns the specs of g that apply to t, in declared order.
func (g Group) Resolve(t Target) []Spec {
	if g.Specs == nil {
		return nil
	}
	all := g.Specs(t.Platform)
	out := make([]Spec, 0, len(all))
	for _, s := range all {
		if s.Applies(t) {
			out = append(out, s)
		}
	}
	return out
}

// BranchIs matches targets on branch b.
func BranchIs(b Branch) Predicate {
	return func(t Target) bool { return t.Branch == b }
}

// FeatureEnabled matches targets whose feature flag selected by f is set.
func FeatureEnabled(f func(Features) bool) Predicate {
	return func(t Target) bool { return f(t.Features) }
}

// All matches when every predicate matches.
func All(ps ...Predicate) Predicate {
	return func(t Target) bool {
		for _, p := range ps {
			if !p(t) {
				return false
			}
		}
		return true
	}
}
