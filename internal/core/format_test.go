package core

import (
	"testing"
	"time"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{0, "0 KB"},
		{500, "0 KB"},
		{1536, "1 KB"},
		{MB - 1, "1023 KB"},
		{2097152, "2.00 MB"},
		{3221225472, "3.00 GB"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.bytes); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestFormatSizeDetailed(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{0, "0 B"},
		{500, "500 B"},
		{1023, "1023 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{2097152, "2.00 MB"},
		{3221225472, "3.00 GB"},
	}
	for _, tt := range tests {
		if got := FormatSizeDetailed(tt.bytes); got != tt.want {
			t.Errorf("FormatSizeDetailed(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestFormatMemory(t *testing.T) {
	if got := FormatMemory(512 * MB); got != "512.00 MB" {
		t.Errorf("FormatMemory(512MB) = %q", got)
	}
	if got := FormatMemory(16 * GB); got != "16.00 GB" {
		t.Errorf("FormatMemory(16GB) = %q", got)
	}
}

func TestFormatTemperature(t *testing.T) {
	if got := FormatTemperature(42.25); got != "42.2°C" && got != "42.3°C" {
		t.Errorf("FormatTemperature(42.25) = %q", got)
	}
	if got := FormatTemperature(85); got != "85.0°C" {
		t.Errorf("FormatTemperature(85) = %q", got)
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{90 * time.Second, "1 minutes"},
		{3*time.Hour + 5*time.Minute, "3 hours, 5 minutes"},
		{50 * time.Hour, "2 days, 2 hours"},
	}
	for _, tt := range tests {
		if got := FormatUptime(tt.d); got != tt.want {
			t.Errorf("FormatUptime(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
