package cli

import "time"

// Default values for CLI flags and configurations.
const (
	// ManifestTimeout bounds a single manifest request.
	ManifestTimeout = 30 * time.Second
	// TabWidth is the width of tabs in formatted output.
	TabWidth = 2

	// FormatText renders reports as an aligned table.
	FormatText = "text"
	// FormatJSON renders reports as JSON.
	FormatJSON = "json"
)
