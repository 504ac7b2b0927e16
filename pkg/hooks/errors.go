package hooks

import (
	"fmt"

	"github.com/cperrin88/altvsync/pkg/errors"
)

// Hook errors.
var (
	ErrHookTypeEmpty = fmt.Errorf("hook type cannot be empty")

	// ErrHookExecution means the script did not compile or crashed at runtime.
	ErrHookExecution = fmt.Errorf("hook script failed to run")

	// ErrHookScript means the script ran and reported a failure through its err variable.
	ErrHookScript = fmt.Errorf("hook script reported an error")

	ErrHookLoad = fmt.Errorf("failed to load hook")
)

// ErrUnsupportedHookType rejects hook types other than post-download.
func ErrUnsupportedHookType(hookType HookType) error {
	return errors.Wrapf(ErrHookLoad, "unsupported hook type %q", hookType)
}
