package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitCodeOK},
		{name: "reconciliation", err: fmt.Errorf("check: %w", ErrReconciliation), want: ExitCodeViolations},
		{name: "configuration", err: Configurationf("threads must be between 1 and 64: %d", 0), want: ExitCodeError},
		{name: "command error code wins", err: NewCommandError(ErrReconciliation, ExitCodeError), want: ExitCodeError},
		{name: "wrapped command error", err: fmt.Errorf("run: %w", NewCommandError(errors.New("x"), ExitCodeViolations)), want: ExitCodeViolations},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestWrapIO(t *testing.T) {
	err := fmt.Errorf("reading definitions: %w", WrapIO("app.properties", os.ErrNotExist))

	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NotErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), `"app.properties"`)

	var ioErr *IOError
	assert.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "app.properties", ioErr.Path)
}

func TestConfigurationf(t *testing.T) {
	err := Configurationf("file spec %q is blank", " ")
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.EqualError(t, err, `configuration error: file spec " " is blank`)
}
