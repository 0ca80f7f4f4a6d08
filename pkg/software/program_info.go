// SPDX-License-Identifier: Apache-2.0

package software

import "os"

// ProgramInfo describes an installed executable located on the search path.
type ProgramInfo struct {
	// Path is the resolved absolute path of the executable.
	Path string
	// Mode is the file mode of the executable.
	Mode os.FileMode
	// Version is the first line of the program's self-reported version
	// output, or VersionUnknown when nothing parseable was produced.
	Version string
	// SHA256 is the hex encoded content hash of the executable.
	SHA256 string
}

// IsExecAny reports whether any execute bit is set on the program file.
func (p *ProgramInfo) IsExecAny() bool {
	return p.Mode&0111 != 0
}

// IsExecOwner reports whether the owner execute bit is set.
func (p *ProgramInfo) IsExecOwner() bool {
	return p.Mode&0100 != 0
}
