package config

import (
	"fmt"

	"github.com/markusressel/pidfan/internal/configuration"
	"github.com/spf13/cobra"
)

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Prints an example configuration",
	Long:  `Prints a configuration using every heat source and fan type, which can be used as a starting point.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := configuration.RenderYaml(configuration.ExampleConfig())
		if err != nil {
			return err
		}
		fmt.Print(content)
		return nil
	},
}

func init() {
	Command.AddCommand(exampleCmd)
}
