// Package platform reports whether the host can run the maintenance engine.
package platform

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrUnsupported is returned on operating systems without the Linux
// pseudo-filesystems the engine reads.
var ErrUnsupported = errors.New("unsupported operating system")

// SupportedOS represents supported operating systems
type SupportedOS string

const (
	Linux SupportedOS = "linux"
)

// GetOS returns the current operating system
func GetOS() SupportedOS {
	return SupportedOS(runtime.GOOS)
}

// IsSupported returns true if the current OS is supported
func IsSupported() bool {
	return isSupported(GetOS())
}

func isSupported(os SupportedOS) bool {
	return os == Linux
}

// ValidateSupport returns an error if the current OS is not supported
func ValidateSupport() error {
	return validate(GetOS())
}

func validate(os SupportedOS) error {
	if !isSupported(os) {
		return fmt.Errorf("%w: %s. Supported: %s", ErrUnsupported, os, Linux)
	}
	return nil
}
