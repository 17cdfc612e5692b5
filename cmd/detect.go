package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/markusressel/pidfan/cmd/global"
	"github.com/markusressel/pidfan/internal/hwmon"
	"github.com/markusressel/pidfan/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect temperature sensors",
	Long: `Lists all temperature inputs detected by lm-sensors.
Platform and index can be used in a hwmon heat source configuration.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		controllers := hwmon.GetChips()
		if len(controllers) <= 0 {
			ui.Warning("No temperature sensors detected")
			return
		}

		for _, controller := range controllers {
			ui.Printfln("> %s (platform: %s)", controller.Name, controller.Platform)

			var rows [][]string
			for _, input := range controller.TempInputs {
				_, file := filepath.Split(input.Input)
				rows = append(rows, []string{
					"", strconv.Itoa(input.Index), fmt.Sprintf("%s (%s)", input.Label, file), fmt.Sprintf("%.1f", input.Value),
				})
			}

			tableString, err := global.RenderTable(table.Table{
				Headers: []string{"Sensors", "Index", "Label", "Value"},
				Rows:    rows,
			})
			if err != nil {
				ui.Fatal("Error printing table: %v", err)
			}
			ui.Printfln(tableString)
		}
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
