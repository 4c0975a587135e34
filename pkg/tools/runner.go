package tools

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Runner executes shell commands. Tests replace it with a mock.
type Runner interface {
	// Run executes cmd through the shell. err is non-nil only when the
	// command could not be started; a non-zero exit is reported via code.
	Run(ctx context.Context, cmd string) (stdout, stderr string, code int, err error)
}

// LocalRunner executes commands using sh -c and captures stdout/stderr.
type LocalRunner struct{}

func (l *LocalRunner) Run(ctx context.Context, cmd string) (string, string, int, error) {
	c := exec.CommandContext(ctx, "sh", "-c", cmd)
	var out bytes.Buffer
	var errb bytes.Buffer
	c.Stdout = &out
	c.Stderr = &errb
	if err := c.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return out.String(), errb.String(), ee.ExitCode(), nil
		}
		return out.String(), errb.String(), -1, err
	}
	return out.String(), errb.String(), 0, nil
}
