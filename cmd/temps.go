package cmd

import (
	"fmt"

	"github.com/CristiGvl/picoMaint/internal/core"
	"github.com/CristiGvl/picoMaint/internal/temps"
	"github.com/spf13/cobra"
)

var tempsJSON bool

var tempsCmd = &cobra.Command{
	Use:   "temps",
	Short: "Show hardware temperatures, hottest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		sensors, err := temps.NewReader(cfg.Sensors.SysfsRoot).GetSensors(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if tempsJSON {
			return writeJSON(out, sensors)
		}
		if len(sensors) == 0 {
			fmt.Fprintln(out, dimStyle.Render("No temperature sensors found."))
			return nil
		}

		t := newTable("SENSOR", "LABEL", "GROUP", "TEMP", "STATUS")
		for _, s := range sensors {
			severity := temps.Classify(s.Temperature)
			t.Row(
				s.Name,
				s.Label,
				string(temps.GroupOf(s)),
				core.FormatTemperature(s.Temperature),
				severityStyles[severity].Render(string(severity)),
			)
		}
		renderTable(out, t)
		return nil
	},
}

func init() {
	tempsCmd.Flags().BoolVar(&tempsJSON, "json", false, "Print JSON instead of a table")
}
