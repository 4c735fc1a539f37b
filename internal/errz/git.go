package errz

import (
	"fmt"
	"strings"
)

// ErrNotRepository is returned when a configured directory is not a git working tree
var ErrNotRepository = fmt.Errorf("not a git working directory")

// ErrCommandFailed is matched by every *CommandError
var ErrCommandFailed = fmt.Errorf("command failed")

// CommandError describes a failed external command invocation
type CommandError struct {
	Name   string
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Name, strings.Join(e.Args, " "), e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += "\nstderr: " + stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func (e *CommandError) Is(target error) bool {
	return target == ErrCommandFailed
}
