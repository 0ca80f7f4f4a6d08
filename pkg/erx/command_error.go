// SPDX-License-Identifier: Apache-2.0

package erx

import (
	"github.com/joomcode/errorx"

	"github.com/probelab/scanprep/pkg/exit"
)

const commandErrorMsg = "command %q failed with exit code %d"

// NewCommandError binds a failed external command to its exit code.
// A code outside the valid range collapses to exit.GeneralError.
func NewCommandError(cause error, command string, code exit.Code) *errorx.Error {
	if code < exit.MinValidExitCode || code > exit.MaxValidExitCode {
		code = exit.GeneralError
	}

	err := CommandError.New(commandErrorMsg, command, code.Int()).
		WithProperty(commandProperty, command).
		WithProperty(exitCodeProperty, code)

	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}

	return err
}

// CommandOf returns the command line recorded on a command error, if any.
func CommandOf(err error) (string, bool) {
	ex := errorx.Cast(err)
	if ex == nil {
		return "", false
	}

	v, ok := ex.Property(commandProperty)
	if !ok {
		return "", false
	}

	cmd, ok := v.(string)
	return cmd, ok
}
