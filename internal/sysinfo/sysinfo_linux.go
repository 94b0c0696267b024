//go:build linux

package sysinfo

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

const cpuinfoPath = "/proc/cpuinfo"

// LinuxReader implements host summaries for Linux
type LinuxReader struct{}

// newPlatformReader creates a new Linux system reader
func newPlatformReader() Reader {
	return &LinuxReader{}
}

// GetInfo returns the host summary. Host identity is required; CPU and
// memory figures that cannot be read are left zero.
func (r *LinuxReader) GetInfo(ctx context.Context) (*Info, error) {
	hostInfo, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read host info: %w", err)
	}

	info := &Info{
		Hostname:      hostInfo.Hostname,
		OS:            hostInfo.Platform,
		OSVersion:     hostInfo.PlatformVersion,
		KernelVersion: hostInfo.KernelVersion,
		Uptime:        time.Duration(hostInfo.Uptime) * time.Second,
		UptimeSeconds: hostInfo.Uptime,
	}
	if info.OS == "" {
		info.OS = hostInfo.OS
	}

	info.CPU = r.cpu(ctx)
	info.Memory = r.memory(ctx)

	return info, nil
}

func (r *LinuxReader) cpu(ctx context.Context) CPU {
	var out CPU

	if threads, err := cpu.CountsWithContext(ctx, true); err == nil {
		out.Threads = threads
	} else {
		slog.Debug("Failed to count logical CPUs", "err", err)
	}

	stats, err := cpu.InfoWithContext(ctx)
	if err != nil || len(stats) == 0 {
		slog.Debug("Failed to read CPU info", "err", err)
		return out
	}
	out.Model = stats[0].ModelName
	out.Frequency = stats[0].Mhz

	if f, err := os.Open(cpuinfoPath); err == nil {
		out.Cores = physicalCores(f)
		f.Close()
	}
	if out.Cores == 0 {
		if n, err := cpu.CountsWithContext(ctx, false); err == nil {
			out.Cores = n
		}
	}
	if out.Cores == 0 || (out.Threads > 0 && out.Cores > out.Threads) {
		out.Cores = out.Threads
	}

	return out
}

func (r *LinuxReader) memory(ctx context.Context) Memory {
	var out Memory

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		out.Total = vm.Total
		out.Used = vm.Used
		out.Available = vm.Available
		out.Free = vm.Free
		out.Usage = vm.UsedPercent
	} else {
		slog.Debug("Failed to read memory info", "err", err)
	}

	if swap, err := mem.SwapMemoryWithContext(ctx); err == nil {
		out.SwapTotal = swap.Total
		out.SwapUsed = swap.Used
	} else {
		slog.Debug("Failed to read swap info", "err", err)
	}

	return out
}
