package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/pidfan/cmd/global"
	"github.com/markusressel/pidfan/internal/configuration"
	"github.com/markusressel/pidfan/internal/controller"
	"github.com/markusressel/pidfan/internal/persistence"
	"github.com/markusressel/pidfan/internal/ui"
	"github.com/markusressel/pidfan/internal/util"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var (
	historyLimit  int
	historyOutput string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the most recent control cycles",
	Long: `Prints the most recent control cycles stored by the daemon
(requires history.enabled in the configuration).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		global.LoadConfiguration()
		config := configuration.CurrentConfig

		history := persistence.NewHistory(config.DbPath, config.History.MaxEntries, ui.NewPtermLogger())
		cycles, err := history.LoadCycles(config.Fan.ID, historyLimit)
		if errors.Is(err, os.ErrNotExist) || (err == nil && len(cycles) <= 0) {
			ui.Warning("No history for fan %s yet...", config.Fan.ID)
			return nil
		}
		if err != nil {
			return err
		}

		if len(historyOutput) > 0 {
			return exportCycles(cycles, historyOutput)
		}

		return printCycles(config.Fan.ID, cycles)
	},
}

func exportCycles(cycles []controller.CycleResult, path string) error {
	data, err := json.MarshalIndent(cycles, "", "  ")
	if err != nil {
		return err
	}
	filePath, err := util.ExpandPath(path)
	if err != nil {
		return err
	}
	err = util.WriteFileAtomic(filePath, bytes.NewReader(data))
	if err != nil {
		return err
	}
	ui.Success("Exported %d cycles to %s", len(cycles), filePath)
	return nil
}

func printCycles(fanId string, cycles []controller.CycleResult) error {
	var rows [][]string
	var temperatures []float64
	var duties []float64
	for _, cycle := range cycles {
		rows = append(rows, []string{
			cycle.Time.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%.2f", cycle.Temperature),
			fmt.Sprintf("%.2f", cycle.SetPoint),
			fmt.Sprintf("%.2f", cycle.PidOutput),
			strconv.Itoa(cycle.Duty),
			strconv.Itoa(cycle.TargetRpm),
		})
		temperatures = append(temperatures, cycle.Temperature)
		duties = append(duties, float64(cycle.Duty))
	}

	ui.Printfln(fanId)
	tableString, err := global.RenderTable(table.Table{
		Headers: []string{"Time", "Temperature", "Set Point", "Output", "Duty", "Target RPM"},
		Rows:    rows,
	})
	if err != nil {
		return err
	}
	ui.Printfln(tableString)

	ui.Printfln("Temperature min: %.2f, avg: %.2f, max: %.2f", util.Min(temperatures), util.Avg(temperatures), util.Max(temperatures))
	ui.Printfln("Duty min: %.0f%%, avg: %.1f%%, max: %.0f%%", util.Min(duties), util.Avg(duties), util.Max(duties))

	if len(cycles) > 1 {
		graph := asciigraph.PlotMany(
			[][]float64{temperatures, duties},
			asciigraph.Height(15),
			asciigraph.Width(100),
			asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
			asciigraph.Caption("Temperature (red) / Duty % (blue)"),
		)
		ui.Printfln(graph)
	}
	return nil
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 50, "Number of most recent cycles to print, 0 for all")
	historyCmd.Flags().StringVarP(&historyOutput, "output", "o", "", "Export the cycles as JSON to the given file instead of printing them")

	rootCmd.AddCommand(historyCmd)
}
