package disk

import (
	"context"
	"log/slog"
	"strings"

	psdisk "github.com/shirou/gopsutil/v3/disk"
)

// MountPoint describes one mounted filesystem and its capacity.
// Used counts reserved blocks, so Used+Available may be less than Total.
type MountPoint struct {
	Device    string `json:"device"`
	Path      string `json:"mountpoint"`
	FSType    string `json:"filesystem"`
	Total     uint64 `json:"total_bytes"`
	Used      uint64 `json:"used_bytes"`
	Available uint64 `json:"available_bytes"`
}

// UsedPercentage returns Used as a percentage of Total, or 0 for an empty filesystem.
func (m MountPoint) UsedPercentage() float64 {
	if m.Total == 0 {
		return 0
	}
	return float64(m.Used) / float64(m.Total) * 100
}

// Reader interface for mount enumeration
type Reader interface {
	GetMounts(ctx context.Context) ([]MountPoint, error)
}

// DefaultMountTable is the mount table of the calling process's namespace.
const DefaultMountTable = "/proc/self/mounts"

// NewReader creates a mount reader for the current platform. mountTable
// names the mounts(5) file to parse; empty means DefaultMountTable.
func NewReader(mountTable string) Reader {
	return newPlatformReader(MountTableSource(mountTable))
}

// MountTableSource returns the mount table a reader configured with
// mountTable will parse.
func MountTableSource(mountTable string) string {
	if mountTable == "" {
		return DefaultMountTable
	}
	return mountTable
}

// excludedTypes is the closed set of pseudo filesystems that never get a
// capacity query. Any type starting with "fuse" is excluded as well.
var excludedTypes = map[string]bool{
	"tmpfs":    true,
	"devtmpfs": true,
	"proc":     true,
	"sysfs":    true,
	"cgroup":   true,
	"cgroup2":  true,
	"devpts":   true,
}

// IsPseudoFS reports whether fsType belongs to the excluded set.
func IsPseudoFS(fsType string) bool {
	return excludedTypes[fsType] || strings.HasPrefix(fsType, "fuse")
}

// PartitionsFunc lists mount table entries in table order.
type PartitionsFunc func(ctx context.Context) ([]psdisk.PartitionStat, error)

// UsageFunc queries block-level capacity for a mount path.
type UsageFunc func(ctx context.Context, path string) (*psdisk.UsageStat, error)

// Enumerator turns mount table entries into MountPoints.
type Enumerator struct {
	Partitions PartitionsFunc
	Usage      UsageFunc
}

// GetMounts returns every non-pseudo mount whose capacity could be read.
// An unreadable mount table yields an empty result, not an error.
func (e *Enumerator) GetMounts(ctx context.Context) ([]MountPoint, error) {
	mounts := []MountPoint{}

	partitions, err := e.Partitions(ctx)
	if err != nil {
		slog.Debug("Mount table unavailable", "err", err)
		return mounts, nil
	}

	for _, p := range partitions {
		if IsPseudoFS(p.Fstype) {
			continue
		}

		usage, err := e.Usage(ctx, p.Mountpoint)
		if err != nil {
			slog.Debug("Skipping mount", "path", p.Mountpoint, "err", err)
			continue
		}

		// gopsutil maps Free to available blocks and Used to total minus free blocks.
		mounts = append(mounts, MountPoint{
			Device:    p.Device,
			Path:      p.Mountpoint,
			FSType:    p.Fstype,
			Total:     usage.Total,
			Used:      usage.Used,
			Available: usage.Free,
		})
	}

	return mounts, nil
}
