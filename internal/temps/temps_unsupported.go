//go:build !linux

package temps

import (
	"context"
	"fmt"
)

// UnsupportedReader is a fallback for unsupported platforms
type UnsupportedReader struct{}

// newPlatformReader creates a fallback temperature reader for unsupported platforms
func newPlatformReader(sysfsRoot string) Reader {
	return &UnsupportedReader{}
}

// GetSensors returns an error for unsupported platforms
func (r *UnsupportedReader) GetSensors(ctx context.Context) ([]Sensor, error) {
	return nil, fmt.Errorf("temperature monitoring not supported on this platform")
}
