package platform

import "runtime"

// Desktop families with a known way to read the color scheme.
const (
	Linux   = "linux"
	Darwin  = "darwin"
	Windows = "windows"
)

// Current returns the running OS.
func Current() string {
	return runtime.GOOS
}

// IsLinux reports whether the current OS is Linux.
func IsLinux() bool {
	return runtime.GOOS == Linux
}
