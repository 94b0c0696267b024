package temps

import (
	"context"
	"math"
	"sort"
	"strings"
)

// DedupEpsilon is the largest temperature gap, in °C, between two adjacent
// readings with the same label that are still treated as one sensor.
const DedupEpsilon = 0.1

// Sensor represents a temperature sensor
type Sensor struct {
	Name        string  `json:"name"`
	Label       string  `json:"label"`
	Temperature float64 `json:"temperature_celsius"`
}

// Severity grades a temperature reading.
type Severity string

const (
	Normal   Severity = "Normal"
	Warm     Severity = "Warm"
	Hot      Severity = "Hot"
	Critical Severity = "Critical"
)

// Classify grades a temperature: below 50 is normal, below 70 warm, below 85
// hot and anything else critical.
func Classify(celsius float64) Severity {
	switch {
	case celsius < 50:
		return Normal
	case celsius < 70:
		return Warm
	case celsius < 85:
		return Hot
	default:
		return Critical
	}
}

// Group is a coarse hardware category derived from a sensor's name.
type Group string

const (
	GroupCPU    Group = "cpu"
	GroupGPU    Group = "gpu"
	GroupDrive  Group = "drive"
	GroupSystem Group = "system"
)

// GroupOf guesses which hardware a sensor belongs to from its name and label.
func GroupOf(s Sensor) Group {
	key := strings.ToLower(s.Name + " " + s.Label)
	switch {
	case containsAny(key, "cpu", "core", "processor", "package", "k10temp", "x86_pkg"):
		return GroupCPU
	case containsAny(key, "gpu", "nvidia", "amdgpu", "radeon", "nouveau"):
		return GroupGPU
	case containsAny(key, "drive", "disk", "nvme", "sda", "sdb"):
		return GroupDrive
	default:
		return GroupSystem
	}
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Reader interface for temperature monitoring
type Reader interface {
	GetSensors(ctx context.Context) ([]Sensor, error)
}

// NewReader creates a new temperature reader for the current platform.
// sysfsRoot is where the kernel's sysfs is mounted, normally /sys.
func NewReader(sysfsRoot string) Reader {
	return newPlatformReader(sysfsRoot)
}

// SortAndDedup orders sensors hottest first and then drops adjacent
// near-duplicates (see Dedup).
func SortAndDedup(sensors []Sensor) []Sensor {
	sort.SliceStable(sensors, func(i, j int) bool {
		return sensors[i].Temperature > sensors[j].Temperature
	})
	return Dedup(sensors)
}

// Dedup removes an entry when the entry kept just before it has the same
// label and a temperature within DedupEpsilon. Only neighbours are compared,
// so the same chip seen through thermal zones and hwmon with diverging
// readings stays listed twice.
func Dedup(sensors []Sensor) []Sensor {
	out := make([]Sensor, 0, len(sensors))
	for _, s := range sensors {
		if n := len(out); n > 0 {
			last := out[n-1]
			if last.Label == s.Label && math.Abs(last.Temperature-s.Temperature) < DedupEpsilon {
				continue
			}
		}
		out = append(out, s)
	}
	return out
}
