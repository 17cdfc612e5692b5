package fan

import (
	"github.com/markusressel/pidfan/cmd/global"
	"github.com/markusressel/pidfan/internal/configuration"
	"github.com/markusressel/pidfan/internal/fans"
	"github.com/markusressel/pidfan/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "fan",
	Short:            "Fan related commands",
	Long:             ``,
	TraverseChildren: true,
}

func getFan() (*fans.Fan, error) {
	global.LoadConfiguration()
	config := configuration.CurrentConfig
	return fans.NewFanFromConfig(config.Fan, config.CommandTimeout, ui.NopLogger{})
}
