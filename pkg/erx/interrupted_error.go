// SPDX-License-Identifier: Apache-2.0

package erx

import "github.com/joomcode/errorx"

const interruptedErrorMsg = "run interrupted by signal"

// NewInterruptedError marks a run cut short by a delivered signal. The
// trait drives the exit code mapping to 130.
func NewInterruptedError(cause error) *errorx.Error {
	err := InterruptedError.New(interruptedErrorMsg)

	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}

	return err
}
