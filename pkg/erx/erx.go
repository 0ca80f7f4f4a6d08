// SPDX-License-Identifier: Apache-2.0

// Package erx carries the error types shared across scanprep packages.
// All errors are errorx based so traits and printable properties survive
// wrapping on the way up to the doctor.
package erx

import (
	"github.com/joomcode/errorx"

	"github.com/probelab/scanprep/pkg/exit"
)

var (
	ErrorsNamespace = errorx.NewNamespace("scanprep")

	// TraitPrecondition marks failures of checks that must hold before any
	// package manager mutation is attempted (privilege, OS family).
	TraitPrecondition = errorx.RegisterTrait("precondition")

	// TraitInterrupted marks errors caused by a delivered interrupt signal.
	TraitInterrupted = errorx.RegisterTrait("interrupted")

	CommandError       = ErrorsNamespace.NewType("command_error")
	UnsupportedOSError = ErrorsNamespace.NewType("unsupported_os", TraitPrecondition)
	PrivilegeError     = ErrorsNamespace.NewType("privilege_required", TraitPrecondition)
	InterruptedError   = ErrorsNamespace.NewType("interrupted", TraitInterrupted)

	commandProperty  = errorx.RegisterPrintableProperty("command")
	exitCodeProperty = errorx.RegisterPrintableProperty("exit_code")
	osNameProperty   = errorx.RegisterPrintableProperty("os_name")
)

// IsInterrupted reports whether err carries the interrupted trait anywhere
// in its chain.
func IsInterrupted(err error) bool {
	if err == nil {
		return false
	}

	return errorx.HasTrait(err, TraitInterrupted)
}

// IsPrecondition reports whether err is a failed precondition check.
func IsPrecondition(err error) bool {
	if err == nil {
		return false
	}

	return errorx.HasTrait(err, TraitPrecondition)
}

// ExitCode maps an error to the process exit code contract:
// nil terminates normally, interrupted runs exit with 130, an explicit
// command exit code is honored, everything else is a general error.
func ExitCode(err error) exit.Code {
	if err == nil {
		return exit.NormalTermination
	}

	if IsInterrupted(err) {
		return exit.Interrupted
	}

	if ex := errorx.Cast(err); ex != nil {
		if v, ok := ex.Property(exitCodeProperty); ok {
			if code, ok := v.(exit.Code); ok &&
				code >= exit.MinValidExitCode && code <= exit.MaxValidExitCode {
				return code
			}
		}
	}

	return exit.GeneralError
}
