//go:build linux

package temps

import (
	"context"
)

// LinuxReader implements temperature monitoring for Linux
type LinuxReader struct {
	collector *SysfsCollector
}

// newPlatformReader creates a new Linux temperature reader
func newPlatformReader(sysfsRoot string) Reader {
	return &LinuxReader{collector: &SysfsCollector{Root: sysfsRoot}}
}

// GetSensors returns the sensors found under sysfs. Absent thermal or hwmon
// subsystems produce an empty list rather than an error.
func (r *LinuxReader) GetSensors(ctx context.Context) ([]Sensor, error) {
	return r.collector.Collect(ctx), nil
}
