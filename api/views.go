package api

import (
	"github.com/CristiGvl/picoMaint/internal/cleanup"
	"github.com/CristiGvl/picoMaint/internal/core"
	"github.com/CristiGvl/picoMaint/internal/disk"
	"github.com/CristiGvl/picoMaint/internal/folder"
	"github.com/CristiGvl/picoMaint/internal/sysinfo"
	"github.com/CristiGvl/picoMaint/internal/temps"
)

type mountView struct {
	disk.MountPoint
	UsedPercent    float64 `json:"used_percent"`
	TotalHuman     string  `json:"total"`
	UsedHuman      string  `json:"used"`
	AvailableHuman string  `json:"available"`
}

func mountViews(mounts []disk.MountPoint) []mountView {
	views := make([]mountView, 0, len(mounts))
	for _, m := range mounts {
		views = append(views, mountView{
			MountPoint:     m,
			UsedPercent:    m.UsedPercentage(),
			TotalHuman:     core.FormatSize(m.Total),
			UsedHuman:      core.FormatSize(m.Used),
			AvailableHuman: core.FormatSize(m.Available),
		})
	}
	return views
}

type folderView struct {
	folder.FolderInfo
	SizeHuman string `json:"size"`
}

func folderViews(folders []folder.FolderInfo) []folderView {
	views := make([]folderView, 0, len(folders))
	for _, f := range folders {
		views = append(views, folderView{FolderInfo: f, SizeHuman: core.FormatSize(f.Size)})
	}
	return views
}

type sensorView struct {
	temps.Sensor
	Display  string         `json:"display"`
	Severity temps.Severity `json:"severity"`
	Group    temps.Group    `json:"group"`
}

func sensorViews(sensors []temps.Sensor) []sensorView {
	views := make([]sensorView, 0, len(sensors))
	for _, s := range sensors {
		views = append(views, sensorView{
			Sensor:   s,
			Display:  core.FormatTemperature(s.Temperature),
			Severity: temps.Classify(s.Temperature),
			Group:    temps.GroupOf(s),
		})
	}
	return views
}

type cleanupView struct {
	cleanup.Item
	Name        string `json:"name"`
	Description string `json:"description"`
	SizeHuman   string `json:"size"`
}

type cleanupReport struct {
	Items      []cleanupView `json:"items"`
	TotalBytes uint64        `json:"total_bytes"`
	Total      string        `json:"total"`
}

func newCleanupReport(items []cleanup.Item) cleanupReport {
	report := cleanupReport{Items: make([]cleanupView, 0, len(items))}
	for _, it := range items {
		report.Items = append(report.Items, cleanupView{
			Item:        it,
			Name:        it.Category.Name(),
			Description: it.Category.Description(),
			SizeHuman:   core.FormatSizeDetailed(it.Size),
		})
		report.TotalBytes += it.Size
	}
	report.Total = core.FormatSizeDetailed(report.TotalBytes)
	return report
}

type systemView struct {
	*sysinfo.Info
	UptimeHuman string `json:"uptime"`
	MemoryTotal string `json:"memory_total"`
	MemoryUsed  string `json:"memory_used"`
}

func newSystemView(info *sysinfo.Info) systemView {
	return systemView{
		Info:        info,
		UptimeHuman: info.UptimeString(),
		MemoryTotal: core.FormatMemory(info.Memory.Total),
		MemoryUsed:  core.FormatMemory(info.Memory.Used),
	}
}
