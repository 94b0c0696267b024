//go:build linux

package disk

import (
	psdisk "github.com/shirou/gopsutil/v3/disk"
)

// newPlatformReader creates a Linux mount reader. Entries come from
// mountTable, capacity from gopsutil's statfs wrapper.
func newPlatformReader(mountTable string) Reader {
	return &Enumerator{
		Partitions: MountTableFile(mountTable),
		Usage:      psdisk.UsageWithContext,
	}
}
