package sensors

import (
	"context"
	"fmt"
	"time"

	"github.com/markusressel/pidfan/internal/configuration"
	"github.com/markusressel/pidfan/internal/hwmon"
)

// TemperatureSource is the capability of reading a single temperature value
// from some probe, regardless of how the probe is accessed.
type TemperatureSource interface {
	// GetId returns a human readable identity of the probe, used in errors and logs
	GetId() string

	// GetValue returns the current temperature of the probe
	GetValue(ctx context.Context) (float64, error)
}

// NewTemperatureSource creates the TemperatureSource described by the given heat source configuration.
// commandTimeout only applies to command based sources, 0 disables it.
func NewTemperatureSource(config configuration.HeatSourceConfig, commandTimeout time.Duration) (TemperatureSource, error) {
	if config.Cmd != nil {
		return &CmdSource{
			Exec:    config.Cmd.Exec,
			Args:    config.Cmd.Args,
			Timeout: commandTimeout,
		}, nil
	}

	if config.File != nil {
		return &FileSource{
			Path:    config.File.Path,
			Divisor: config.File.Divisor,
		}, nil
	}

	if config.HwMon != nil {
		input := config.HwMon.TempInput
		if len(input) <= 0 {
			var err error
			input, err = hwmon.FindTempInput(config.HwMon.Platform, config.HwMon.Index)
			if err != nil {
				return nil, fmt.Errorf("heat source %s: %w", config.Name, err)
			}
		}
		return &HwmonSource{
			Platform: config.HwMon.Platform,
			Index:    config.HwMon.Index,
			Input:    input,
		}, nil
	}

	return nil, fmt.Errorf("no matching source type for heat source: %s", config.Name)
}
