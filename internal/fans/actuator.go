package fans

import (
	"context"
	"fmt"
	"time"

	"github.com/markusressel/pidfan/internal/configuration"
)

const (
	MinDuty = 0
	MaxDuty = 100
)

// ActuatorControl is the capability of driving a fan with a duty percentage
// and reporting the duty it currently believes to be applied.
type ActuatorControl interface {
	GetId() string

	// GetDuty returns the currently applied duty in percent
	GetDuty(ctx context.Context) (int, error)
	// SetDuty applies the given duty in percent [0..100]
	SetDuty(ctx context.Context, percent int) error
}

// NewActuator creates the ActuatorControl described by the given fan configuration.
// commandTimeout only applies to command based actuators, 0 disables it.
func NewActuator(config configuration.FanConfig, commandTimeout time.Duration) (ActuatorControl, error) {
	if config.Cmd != nil {
		if config.Cmd.GetDuty == nil || config.Cmd.SetDuty == nil {
			return nil, fmt.Errorf("fan %s: getDuty and setDuty commands are required", config.ID)
		}
		return &CmdActuator{
			GetDutyCmd: *config.Cmd.GetDuty,
			SetDutyCmd: *config.Cmd.SetDuty,
			Timeout:    commandTimeout,
		}, nil
	}

	if config.File != nil {
		maxValue := config.File.MaxValue
		if maxValue <= 0 {
			maxValue = DefaultFileMaxValue
		}
		return &FileActuator{
			Path:     config.File.Path,
			MaxValue: maxValue,
		}, nil
	}

	return nil, fmt.Errorf("no matching actuator type for fan: %s", config.ID)
}
