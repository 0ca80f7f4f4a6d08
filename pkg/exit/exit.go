// SPDX-License-Identifier: Apache-2.0

package exit

import (
	"fmt"
	"os"
	"syscall"
)

type Code int

func (ec Code) String() string {
	return fmt.Sprintf("%d", ec)
}

func (ec Code) Int() int {
	return int(ec)
}

func (ec Code) TerminateProcess() {
	os.Exit(int(ec))
}

func (ec Code) Is(other int) bool {
	return int(ec) == other
}

const MinValidExitCode Code = 0
const MaxValidExitCode Code = 255

// POSIX standard exit code definitions.

const NormalTermination Code = 0
const GeneralError Code = 1
const UsageError Code = 64
const DataFormatError Code = 65
const MissingInputError Code = 66
const UserUnknown Code = 67
const HostUnknown Code = 68
const ServiceUnavailable Code = 69
const InternalError Code = 70
const SystemError Code = 71
const CriticalFileMissing Code = 72
const FileCreationError Code = 73
const InputOutputError Code = 74
const TemporaryFailure Code = 75
const ProtocolError Code = 76
const PermissionDenied Code = 77
const ConfigurationError Code = 78

// Application specific exit code definitions.

// SignalBase is the conventional shell offset for signal-terminated processes.
const SignalBase Code = 128

// Interrupted is the code for a run cut short by SIGINT (128 + 2).
const Interrupted Code = 130

// FromSignal returns the conventional exit code for a terminating signal.
func FromSignal(sig syscall.Signal) Code {
	return SignalBase + Code(sig)
}
