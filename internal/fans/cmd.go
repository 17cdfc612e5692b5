package fans

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/markusressel/pidfan/internal/configuration"
	"github.com/markusressel/pidfan/internal/util"
)

const (
	PlaceholderDuty    = "%duty%"
	PlaceholderDutyHex = "%duty_hex%"
)

// CmdActuator drives a fan by running external commands
type CmdActuator struct {
	GetDutyCmd configuration.ExecConfig `json:"getDuty"`
	SetDutyCmd configuration.ExecConfig `json:"setDuty"`
	Timeout    time.Duration            `json:"timeout"`
}

func (a *CmdActuator) GetId() string {
	return "cmd:" + a.SetDutyCmd.Exec
}

func (a *CmdActuator) GetDuty(ctx context.Context) (int, error) {
	conf := a.GetDutyCmd
	output, err := util.SafeCmdExecution(ctx, conf.Exec, conf.Args, a.Timeout)
	if err != nil {
		return 0, err
	}

	duty, err := strconv.Atoi(output)
	if err != nil {
		return 0, fmt.Errorf("unable to parse command output %q: %w", output, err)
	}
	return duty, nil
}

func (a *CmdActuator) SetDuty(ctx context.Context, percent int) error {
	conf := a.SetDutyCmd
	args := RenderDutyArgs(conf.Args, percent)

	_, err := util.SafeCmdExecution(ctx, conf.Exec, args, a.Timeout)
	return err
}

// RenderDutyArgs replaces the duty placeholders in the given command arguments
func RenderDutyArgs(args []string, percent int) []string {
	replacer := strings.NewReplacer(
		PlaceholderDutyHex, fmt.Sprintf("0x%02x", percent),
		PlaceholderDuty, strconv.Itoa(percent),
	)

	result := make([]string, 0, len(args))
	for _, arg := range args {
		result = append(result, replacer.Replace(arg))
	}
	return result
}
