// SPDX-License-Identifier: Apache-2.0

package erx

import "github.com/joomcode/errorx"

const privilegeErrorMsg = "user '%s' does not have the required superuser privileges"

// NewPrivilegeError is raised by the privilege check when the effective
// user is not root.
func NewPrivilegeError(username string) *errorx.Error {
	if username == "" {
		username = "unknown"
	}

	return PrivilegeError.New(privilegeErrorMsg, username)
}
