package platform

// Package platform maps the operating system selector of a sync target to the
// platform token used in CDN paths.

const (
	// OSWindows represents the Windows operating system.
	OSWindows = "windows"
	// OSLinux represents the Linux operating system.
	OSLinux = "linux"

	// Windows64 is the CDN token for Windows x64 builds.
	Windows64 Platform = "x64_win32"
	// Linux64 is the CDN token for Linux x64 builds.
	Linux64 Platform = "x64_linux"
)

// ValidPlatforms returns the platform tokens published on the CDN.
func ValidPlatforms() []Platform {
	return []Platform{
		Windows64,
		Linux64,
	}
}
