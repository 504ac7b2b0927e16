package hooks

import "context"

// HookType represents the type of hooks.
type HookType string

// Supported hook types.
const (
	// PostDownload runs after an artifact was downloaded and moved into place.
	PostDownload HookType = "post-download"
)

// Valid reports whether t is a supported hook type.
func (t HookType) Valid() bool {
	return t == PostDownload
}

// Hook represents a hook script with its type and content.
type Hook struct {
	Type    HookType
	Content string
}

// HookContext contains information passed to hooks.
type HookContext struct {
	ArtifactName string
	ArtifactPath string
	ArtifactURL  string
	Digest       string
	Branch       string
	Platform     string
	Vars         map[string]interface{}
}

// HookManager defines the interface for managing hooks.
type HookManager interface {
	// Execute runs the specified hook type with the given context
	Execute(ctx context.Context, hookType HookType, hc HookContext) error

	// AddHook adds a new hooks
	AddHook(hook Hook) error

	// RemoveHook removes a hook of the specified type
	RemoveHook(hookType HookType) error

	// HasHook checks if a hook of the specified type exists
	HasHook(hookType HookType) bool
}
