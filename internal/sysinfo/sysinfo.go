// Package sysinfo summarises the host the maintenance engine runs on.
package sysinfo

import (
	"context"
	"time"

	"github.com/CristiGvl/picoMaint/internal/core"
)

// CPU describes the processor.
type CPU struct {
	Model     string  `json:"model"`
	Cores     int     `json:"cores"`
	Threads   int     `json:"threads"`
	Frequency float64 `json:"frequency_mhz"`
}

// Memory holds RAM and swap figures in bytes.
type Memory struct {
	Total     uint64  `json:"total_bytes"`
	Used      uint64  `json:"used_bytes"`
	Available uint64  `json:"available_bytes"`
	Free      uint64  `json:"free_bytes"`
	Usage     float64 `json:"usage_percent"`
	SwapTotal uint64  `json:"swap_total_bytes"`
	SwapUsed  uint64  `json:"swap_used_bytes"`
}

// Info is a point-in-time host summary.
type Info struct {
	Hostname      string        `json:"hostname"`
	OS            string        `json:"os"`
	OSVersion     string        `json:"os_version"`
	KernelVersion string        `json:"kernel_version"`
	Uptime        time.Duration `json:"-"`
	UptimeSeconds uint64        `json:"uptime_seconds"`
	CPU           CPU           `json:"cpu"`
	Memory        Memory        `json:"memory"`
}

// UptimeString renders Uptime for display.
func (i *Info) UptimeString() string {
	return core.FormatUptime(i.Uptime)
}

// Reader interface for host summaries
type Reader interface {
	GetInfo(ctx context.Context) (*Info, error)
}

// NewReader creates a new system reader for the current platform
func NewReader() Reader {
	return newPlatformReader()
}
