package heatsource

import (
	"context"
	"fmt"

	"github.com/markusressel/pidfan/cmd/global"
	"github.com/markusressel/pidfan/internal/configuration"
	"github.com/markusressel/pidfan/internal/heatsources"
	"github.com/markusressel/pidfan/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var heatSourceName string

var Command = &cobra.Command{
	Use:              "heatsource",
	Short:            "Read the current temperature of the heat sources of a zone",
	Long:             ``,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		list, err := getHeatSources(heatSourceName)
		if err != nil {
			return err
		}

		for _, heatSource := range list {
			value, err := heatSource.Read(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("%s\t%s\t%.2f\t(set point: %.2f)\n", heatSource.Name(), heatSource.SourceId(), value, heatSource.SetPoint())
		}
		return nil
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&heatSourceName,
		"id", "i",
		"",
		"Heat source name as specified in the config",
	)
	_ = Command.MarkPersistentFlagRequired("id")
}

func getHeatSources(name string) ([]*heatsources.HeatSource, error) {
	global.LoadConfiguration()
	config := configuration.CurrentConfig

	var result []*heatsources.HeatSource
	for _, heatSourceConfig := range config.HeatSources {
		if heatSourceConfig.Name != name {
			continue
		}
		heatSource, err := heatsources.NewHeatSourceFromConfig(heatSourceConfig, config.CommandTimeout, ui.NopLogger{})
		if err != nil {
			return nil, err
		}
		result = append(result, heatSource)
	}

	if len(result) <= 0 {
		return nil, fmt.Errorf("no heat source with name found: %s", name)
	}
	return result, nil
}
