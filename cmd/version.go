package cmd

import (
	"github.com/markusressel/pidfan/internal/ui"
	"github.com/spf13/cobra"
)

// Version is overridden at build time via -ldflags
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pidfan",
	Long:  `All software has versions. This is pidfan's`,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Printfln(Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
