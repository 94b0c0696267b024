package core

import (
	"fmt"
	"time"
)

const (
	KB uint64 = 1024
	MB        = 1024 * KB
	GB        = 1024 * MB
)

// FormatSize renders a byte count for mount and folder listings.
// Below one MiB the value is shown in whole kilobytes, so 500 bytes is "0 KB".
func FormatSize(bytes uint64) string {
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	default:
		return fmt.Sprintf("%d KB", bytes/KB)
	}
}

// FormatSizeDetailed renders a byte count for cleanup reports, keeping two
// decimals for kilobytes and falling back to plain bytes below 1 KiB.
func FormatSizeDetailed(bytes uint64) string {
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatMemory renders RAM and swap amounts. Values under one GiB are
// always shown in MB.
func FormatMemory(bytes uint64) string {
	if bytes >= GB {
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	}
	return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
}

// FormatTemperature renders degrees Celsius with one decimal.
func FormatTemperature(celsius float64) string {
	return fmt.Sprintf("%.1f°C", celsius)
}

// FormatUptime renders an uptime using its two most significant units.
func FormatUptime(d time.Duration) string {
	secs := uint64(d / time.Second)
	days := secs / 86400
	hours := (secs % 86400) / 3600
	minutes := (secs % 3600) / 60

	switch {
	case days > 0:
		return fmt.Sprintf("%d days, %d hours", days, hours)
	case hours > 0:
		return fmt.Sprintf("%d hours, %d minutes", hours, minutes)
	default:
		return fmt.Sprintf("%d minutes", minutes)
	}
}
