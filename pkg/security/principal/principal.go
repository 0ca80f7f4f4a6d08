// SPDX-License-Identifier: Apache-2.0

// Package principal identifies the security principal the current process
// runs as. Provisioning uses it for exactly one decision: whether the
// process holds root-equivalent privilege before any package manager
// mutation is attempted.
package principal

import "github.com/joomcode/errorx"

var (
	ErrorsNamespace = errorx.NewNamespace("principal")

	LookupError = ErrorsNamespace.NewType("lookup_error")
)

// Process is the security principal of a running process.
type Process interface {
	// Uid returns the effective user id of the process.
	Uid() int
	// Username returns the login name of the effective user, empty when the
	// user database lookup failed.
	Username() string
	// IsSuperuser reports whether the process runs with root privilege.
	IsSuperuser() bool
}
