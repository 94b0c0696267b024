package cmd

import (
	"fmt"

	"github.com/CristiGvl/picoMaint/internal/core"
	"github.com/CristiGvl/picoMaint/internal/sysinfo"
	"github.com/spf13/cobra"
)

var systemJSON bool

var systemCmd = &cobra.Command{
	Use:   "system",
	Short: "Show a host summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := sysinfo.NewReader().GetInfo(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if systemJSON {
			return writeJSON(out, info)
		}

		t := newTable()
		t.Row("Hostname", info.Hostname)
		t.Row("OS", fmt.Sprintf("%s %s", info.OS, info.OSVersion))
		t.Row("Kernel", info.KernelVersion)
		t.Row("Uptime", info.UptimeString())
		t.Row("CPU", fmt.Sprintf("%s (%d cores, %d threads)", info.CPU.Model, info.CPU.Cores, info.CPU.Threads))
		t.Row("Memory", fmt.Sprintf("%s / %s (%.1f%%)",
			core.FormatMemory(info.Memory.Used), core.FormatMemory(info.Memory.Total), info.Memory.Usage))
		t.Row("Available", core.FormatMemory(info.Memory.Available))
		t.Row("Swap", fmt.Sprintf("%s / %s",
			core.FormatMemory(info.Memory.SwapUsed), core.FormatMemory(info.Memory.SwapTotal)))
		renderTable(out, t)
		return nil
	},
}

func init() {
	systemCmd.Flags().BoolVar(&systemJSON, "json", false, "Print JSON instead of a table")
}
