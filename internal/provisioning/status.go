package provisioning

import (
	"errors"
	"fmt"
	"os/exec"
)

// StatusError carries a delegated tool's exit status through error chains
// so the process can terminate with the same status.
type StatusError struct {
	Status int
	Err    error
}

func (e *StatusError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Status)
	}
	return e.Err.Error()
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// ExitStatus returns the carried process exit status.
func (e *StatusError) ExitStatus() int {
	return e.Status
}

// WithStatus wraps err so that the given exit status survives further
// wrapping. A nil err stays nil.
func WithStatus(status int, err error) error {
	if err == nil {
		return nil
	}
	return &StatusError{Status: status, Err: err}
}

// ExitStatus returns the process exit status for err: the carried status of
// the first status-bearing error in the chain, 1 for any other non-nil
// error, 0 for nil. Carried statuses that are not positive (a signalled
// subprocess reports -1) fall back to 1 so failures never exit zero.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}

	var carrier interface{ ExitStatus() int }
	if errors.As(err, &carrier) {
		if s := carrier.ExitStatus(); s > 0 {
			return s
		}
		return 1
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if s := exitErr.ExitCode(); s > 0 {
			return s
		}
	}

	return 1
}
