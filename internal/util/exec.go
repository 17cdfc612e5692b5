package util

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// SafeCmdExecution runs the given executable after checking that it is safe to be executed
// by a process running as root, and returns its trimmed stdout.
// A timeout <= 0 disables the deadline, the call then blocks until the command exits
// or ctx is cancelled.
func SafeCmdExecution(ctx context.Context, executable string, args []string, timeout time.Duration) (string, error) {
	if _, err := CheckFilePermissionsForExecution(executable); err != nil {
		return "", fmt.Errorf("cannot execute %s: %w", executable, err)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, executable, args...)
	out, err := cmd.Output()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("command timed out after %s: %s", timeout, executable)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("command %s failed: %w: %s", executable, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("command %s failed: %w", executable, err)
	}

	return strings.TrimSpace(string(out)), nil
}
