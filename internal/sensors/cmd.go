package sensors

import (
	"context"
	"fmt"
	"time"

	"github.com/markusressel/pidfan/internal/util"
)

// CmdSource runs an executable which prints a single temperature value
type CmdSource struct {
	Exec    string        `json:"exec"`
	Args    []string      `json:"args"`
	Timeout time.Duration `json:"timeout"`
}

func (s *CmdSource) GetId() string {
	return "cmd:" + s.Exec
}

func (s *CmdSource) GetValue(ctx context.Context) (float64, error) {
	result, err := util.SafeCmdExecution(ctx, s.Exec, s.Args, s.Timeout)
	if err != nil {
		return 0, &SensorError{Source: s.GetId(), Err: err}
	}

	temp, err := util.ParseFiniteFloat(result)
	if err != nil {
		return 0, &SensorError{Source: s.GetId(), Err: fmt.Errorf("unable to parse command output %q: %w", result, err)}
	}

	return temp, nil
}
