package cmd

import (
	"fmt"

	"github.com/CristiGvl/picoMaint/internal/core"
	"github.com/CristiGvl/picoMaint/internal/disk"
	"github.com/spf13/cobra"
)

var mountsJSON bool

var mountsCmd = &cobra.Command{
	Use:   "mounts",
	Short: "Show usage of mounted filesystems",
	RunE: func(cmd *cobra.Command, args []string) error {
		mounts, err := disk.NewReader(cfg.Disk.MountTable).GetMounts(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if mountsJSON {
			return writeJSON(out, mounts)
		}

		t := newTable("MOUNT", "DEVICE", "TYPE", "SIZE", "USED", "AVAIL", "USE%")
		for _, m := range mounts {
			t.Row(
				m.Path,
				m.Device,
				m.FSType,
				core.FormatSize(m.Total),
				core.FormatSize(m.Used),
				core.FormatSize(m.Available),
				fmt.Sprintf("%.1f%%", m.UsedPercentage()),
			)
		}
		renderTable(out, t)
		return nil
	},
}

func init() {
	mountsCmd.Flags().BoolVar(&mountsJSON, "json", false, "Print JSON instead of a table")
}
