package temps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// MaxHwmonIndex is the highest tempN_input probed on each hwmon chip.
// Indices are probed by existence, not discovered from a listing.
const MaxHwmonIndex = 19

// SysfsCollector reads thermal zones and hwmon chips below Root.
type SysfsCollector struct {
	Root string
}

// Collect returns every readable sensor, hottest first, deduplicated.
// Missing subsystems simply contribute nothing.
func (c *SysfsCollector) Collect(ctx context.Context) []Sensor {
	sensors := c.thermalZones(ctx)
	sensors = append(sensors, c.hwmonSensors(ctx)...)
	return SortAndDedup(sensors)
}

// thermalZones reads <root>/class/thermal/thermal_zone*/{temp,type}
func (c *SysfsCollector) thermalZones(ctx context.Context) []Sensor {
	var sensors []Sensor

	base := filepath.Join(c.Root, "class", "thermal")
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil
	}

	for _, e := range entries {
		if ctx.Err() != nil {
			break
		}
		name := e.Name()
		if !strings.HasPrefix(name, "thermal_zone") {
			continue
		}
		zone := filepath.Join(base, name)
		if !isDir(zone) {
			continue
		}

		celsius, ok := readMillidegrees(filepath.Join(zone, "temp"))
		if !ok {
			continue
		}

		label, ok := readTrimmed(filepath.Join(zone, "type"))
		if !ok {
			label = name
		}

		sensors = append(sensors, Sensor{
			Name:        name,
			Label:       label,
			Temperature: celsius,
		})
	}

	return sensors
}

// hwmonSensors reads <root>/class/hwmon/*/temp{1..MaxHwmonIndex}_{input,label}
func (c *SysfsCollector) hwmonSensors(ctx context.Context) []Sensor {
	var sensors []Sensor

	base := filepath.Join(c.Root, "class", "hwmon")
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil
	}

	for _, e := range entries {
		if ctx.Err() != nil {
			break
		}
		chipDir := filepath.Join(base, e.Name())
		if !isDir(chipDir) {
			continue
		}

		chip, ok := readTrimmed(filepath.Join(chipDir, "name"))
		if !ok {
			chip = e.Name()
		}

		for i := 1; i <= MaxHwmonIndex; i++ {
			input := filepath.Join(chipDir, fmt.Sprintf("temp%d_input", i))
			if _, err := os.Stat(input); err != nil {
				continue
			}

			celsius, ok := readMillidegrees(input)
			if !ok {
				continue
			}

			label, ok := readTrimmed(filepath.Join(chipDir, fmt.Sprintf("temp%d_label", i)))
			if !ok {
				label = fmt.Sprintf("Sensor %d", i)
			}

			sensors = append(sensors, Sensor{
				Name:        chip + " - " + label,
				Label:       label,
				Temperature: celsius,
			})
		}
	}

	return sensors
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func readTrimmed(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}

// readMillidegrees parses an integer millidegree file into degrees Celsius.
func readMillidegrees(path string) (float64, bool) {
	s, ok := readTrimmed(path)
	if !ok {
		return 0, false
	}
	milli, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return float64(milli) / 1000, true
}
