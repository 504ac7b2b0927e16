package hooks

import (
	"os"
	"path/filepath"

	"github.com/cperrin88/altvsync/pkg/errors"
)

// HookFileExtensions lists the supported hook file extensions.
var HookFileExtensions = map[string]bool{
	".tengo": true,
}

// LoadHookFile reads the script at path and registers it as hookType.
// An empty path registers nothing.
func LoadHookFile(manager HookManager, hookType HookType, path string) error {
	if path == "" {
		return nil
	}

	if ext := filepath.Ext(path); !HookFileExtensions[ext] {
		return errors.Wrapf(ErrHookLoad, "unsupported hook file extension %q", ext)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(ErrHookLoad, "error reading hook file %s: %v", path, err)
	}

	if err := manager.AddHook(Hook{Type: hookType, Content: string(content)}); err != nil {
		return errors.Wrapf(err, "error adding hook %s", hookType)
	}
	return nil
}
