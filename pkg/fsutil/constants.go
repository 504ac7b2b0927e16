package fsutil

// File and directory permission constants used for synchronized artifacts
// and the output tree.
const (
	// Default file modes.
	FileModeDefault = 0o644 // -rw-r--r--: Default for data blobs and libraries
	FileModeExec    = 0o755 // -rwxr-xr-x: For server executables

	// Directory modes.
	DirModeDefault = 0o755 // drwxr-xr-x: Default for output directories
)
