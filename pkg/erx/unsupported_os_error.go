// SPDX-License-Identifier: Apache-2.0

package erx

import "github.com/joomcode/errorx"

const unsupportedOSErrorMsg = "the operating system '%s' is not supported, an apt based Debian or Ubuntu host is required"

// NewUnsupportedOSError is raised by the environment check when the host is
// not part of the apt family.
func NewUnsupportedOSError(name string) *errorx.Error {
	return UnsupportedOSError.New(unsupportedOSErrorMsg, name).
		WithProperty(osNameProperty, name)
}

// OSNameOf returns the OS description recorded on an unsupported OS error.
func OSNameOf(err error) (string, bool) {
	ex := errorx.Cast(err)
	if ex == nil {
		return "", false
	}

	v, ok := ex.Property(osNameProperty)
	if !ok {
		return "", false
	}

	name, ok := v.(string)
	return name, ok
}
