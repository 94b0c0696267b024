//go:build !linux

package disk

import (
	"context"
	"fmt"
)

// UnsupportedReader is a fallback for unsupported platforms
type UnsupportedReader struct{}

// newPlatformReader creates a fallback mount reader for unsupported platforms
func newPlatformReader(mountTable string) Reader {
	return &UnsupportedReader{}
}

// GetMounts returns an error for unsupported platforms
func (r *UnsupportedReader) GetMounts(ctx context.Context) ([]MountPoint, error) {
	return nil, fmt.Errorf("mount enumeration not supported on this platform")
}
