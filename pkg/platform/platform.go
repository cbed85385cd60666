// Package platform describes the link-related capabilities of the host.
//
// The value is detected once at process start and handed to the components that
// need it, so tests can exercise the Windows code paths of the linker policy on
// any host.
package platform

import "runtime"

// Platform is the set of host properties the linker policy depends on
type Platform struct {
	// OS is the GOOS value the platform was detected from
	OS string `json:"os"`

	// Windows selects Windows link semantics: directory links are removed with
	// rmdir, backslashes are separators and symbolic links to directories need
	// the directory flag.
	Windows bool `json:"windows"`
}

// Detect returns the platform of the running process
func Detect() Platform {
	return ForOS(runtime.GOOS)
}

// ForOS returns the platform for the given GOOS value
func ForOS(goos string) Platform {
	return Platform{
		OS:      goos,
		Windows: goos == "windows",
	}
}

// String returns the OS name
func (p Platform) String() string {
	return p.OS
}
