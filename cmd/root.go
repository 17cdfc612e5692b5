package cmd

import (
	"fmt"
	"os"

	"github.com/markusressel/pidfan/cmd/config"
	"github.com/markusressel/pidfan/cmd/fan"
	"github.com/markusressel/pidfan/cmd/global"
	"github.com/markusressel/pidfan/cmd/heatsource"
	"github.com/markusressel/pidfan/internal"
	"github.com/markusressel/pidfan/internal/configuration"
	"github.com/markusressel/pidfan/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pidfan",
	Short: "A daemon regulating a fan with a PID controller.",
	Long: `pidfan is a simple daemon that regulates the speed of a fan
in closed loop against one or more temperature sensors.`,
	// this is the default command to run when no subcommand is specified
	Run: func(cmd *cobra.Command, args []string) {
		printHeader()

		global.LoadConfiguration()

		err := internal.RunDaemon(configuration.CurrentConfig)
		if err != nil {
			ui.Error("Fan controller failed: %v", err)
			os.Exit(1)
		}
	},
}

func init() {
	cobra.OnInitialize(setupUi)

	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is $HOME/pidfan.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "More verbose output")

	rootCmd.AddCommand(config.Command)
	rootCmd.AddCommand(fan.Command)
	rootCmd.AddCommand(heatsource.Command)
}

func setupUi() {
	ui.SetDebugEnabled(global.Verbose || ui.DebugEnabledFromEnv())

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

// Print a large text with the LetterStyle from the standard theme.
func printHeader() {
	err := pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("pid", pterm.NewStyle(pterm.FgLightBlue)),
		pterm.NewLettersFromStringWithStyle("fan", pterm.NewStyle(pterm.FgWhite)),
	).Render()
	if err != nil {
		fmt.Println("pidfan")
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(func() {
		if err := configuration.InitConfig(global.CfgFile); err != nil {
			ui.FatalWithoutStacktrace(err.Error())
		}
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
