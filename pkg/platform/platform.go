package platform

import (
	"runtime"
	"strings"
)

// Platform is a CDN platform token such as "x64_linux".
type Platform string

// FromWindows returns the platform token for the windows selector of a sync target.
func FromWindows(windows bool) Platform {
	if windows {
		return Windows64
	}
	return Linux64
}

// Current returns the platform token matching the running operating system.
// Every non-Windows host maps to the Linux build.
func Current() Platform {
	return FromWindows(runtime.GOOS == OSWindows)
}

// IsWindows reports whether p is the Windows build.
func (p Platform) IsWindows() bool {
	return p == Windows64
}

// String returns the CDN token.
func (p Platform) String() string {
	return string(p)
}

// Valid reports whether p is a published platform token.
func (p Platform) Valid() bool {
	for _, v := range ValidPlatforms() {
		if p == v {
			return true
		}
	}
	return false
}

// Parse accepts a CDN token or a common OS alias ("windows", "win", "linux")
// and returns the matching platform.
func Parse(s string) (Platform, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Windows64), OSWindows, "win", "win64", "windows_x64":
		return Windows64, true
	case string(Linux64), OSLinux, "linux64", "linux_x64":
		return Linux64, true
	default:
		return "", false
	}
}

// ExecutableName appends the ".exe" suffix for Windows builds.
func (p Platform) ExecutableName(base string) string {
	if p.IsWindows() {
		return base + ".exe"
	}
	return base
}

// LibraryName returns the platform file name of a shared library: "name.dll"
// on Windows and "libname.so" elsewhere.
func (p Platform) LibraryName(name string) string {
	if p.IsWindows() {
		return name + ".dll"
	}
	return "lib" + name + ".so"
}
