package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the CLI.
const (
	ExitCodeOK         = 0
	ExitCodeError      = 1
	ExitCodeViolations = 2
)

var (
	// ErrConfiguration marks invalid configuration: a malformed template, a blank file spec, an unknown charset.
	ErrConfiguration = errors.New("configuration error")
	// ErrIO marks a file that could not be read or decoded.
	ErrIO = errors.New("io error")
	// ErrReconciliation is the aggregate failure raised when enabled checks produced findings.
	ErrReconciliation = errors.New("errors in property definitions or usage")
)

// WrapConfiguration adds context to ErrConfiguration.
func WrapConfiguration(err error) error {
	return fmt.Errorf("%w: %v", ErrConfiguration, err)
}

// Configurationf formats a configuration error message.
func Configurationf(format string, args ...interface{}) error {
	return WrapConfiguration(fmt.Errorf(format, args...))
}

// WrapIO adds the file path and ErrIO to the underlying error, keeping both reachable through errors.Is.
func WrapIO(path string, err error) error {
	return &IOError{Path: path, Err: err}
}

// IOError is a failure while reading one file.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%v: %q: %v", ErrIO, e.Path, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is reports ErrIO equality so callers can test the category without knowing the cause.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// CommandError represents an error that occurred during command execution with the exit code to use.
type CommandError struct {
	ExitCode    int
	CommonError string
	Err         error
}

// Error implements the error interface, returning the message from the common error.
func (e *CommandError) Error() string {
	return e.CommonError
}

// Unwrap returns the wrapped error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError instance.
func NewCommandError(err error, code int) *CommandError {
	return &CommandError{
		ExitCode:    code,
		CommonError: err.Error(),
		Err:         err,
	}
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitCodeOK
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	if errors.Is(err, ErrReconciliation) {
		return ExitCodeViolations
	}
	return ExitCodeError
}
