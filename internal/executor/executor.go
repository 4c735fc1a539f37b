package executor

import (
	"bytes"
	"context"
	"os"
	"os/exec"

	"github.com/ship-digital/autocommit/internal/errz"
)

// CommandExecutor defines an interface for executing commands
type CommandExecutor interface {
	ExecuteCommand(ctx context.Context, name string, args ...string) (string, error)
}

// DefaultExecutor is the real command executor
type DefaultExecutor struct {
	Dir string
	// Env is appended to the process environment when set
	Env []string
}

// ExecuteCommand runs name with args in e.Dir and returns its raw stdout.
// Failures are reported as *errz.CommandError carrying stderr.
func (e *DefaultExecutor) ExecuteCommand(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.Dir
	if len(e.Env) > 0 {
		cmd.Env = append(os.Environ(), e.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &errz.CommandError{
			Name:   name,
			Args:   args,
			Stderr: stderr.String(),
			Err:    err,
		}
	}

	return stdout.String(), nil
}
