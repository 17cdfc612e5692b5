package global

import (
	"bytes"

	"github.com/markusressel/pidfan/internal/configuration"
	"github.com/markusressel/pidfan/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/tomlazar/table"
)

var (
	CfgFile string
	NoColor bool
	NoStyle bool
	Verbose bool
)

// LoadConfiguration reads, decodes and validates the configuration file, exiting on failure.
// It returns the path of the configuration file.
func LoadConfiguration() string {
	configPath, err := configuration.DetectAndReadConfigFile()
	if err != nil {
		ui.FatalWithoutStacktrace(err.Error())
	}
	ui.Info("Using configuration file at: %s", configPath)

	if err = configuration.LoadConfig(); err != nil {
		ui.FatalWithoutStacktrace(err.Error())
	}
	if err = configuration.Validate(configPath); err != nil {
		ui.FatalWithoutStacktrace("Config Validation Error: %v", err)
	}
	return configPath
}

// RenderTable renders t using the common table style
func RenderTable(t table.Table) (string, error) {
	var buf bytes.Buffer
	err := t.WriteTable(&buf, &table.Config{
		ShowIndex:       false,
		Color:           !NoColor,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	})
	return buf.String(), err
}
