package terraform

import (
	"errors"
	"fmt"
	"os/exec"
)

// exitError carries the exit status of a failed terraform run so callers can
// pass it through unchanged.
type exitError struct {
	err    error
	status int
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

// ExitStatus returns the exit status of the terraform process.
func (e *exitError) ExitStatus() int { return e.status }

// wrapRunError wraps a failed terraform command, preserving the process exit
// status when the error chain carries one.
func wrapRunError(command string, err error) error {
	status := 1
	var procErr *exec.ExitError
	if errors.As(err, &procErr) {
		status = procErr.ExitCode()
	}
	return &exitError{
		err:    fmt.Errorf("terraform %s: %w", command, err),
		status: status,
	}
}
