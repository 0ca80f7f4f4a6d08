// SPDX-License-Identifier: Apache-2.0

package software

import "github.com/rs/zerolog"

var nolog = zerolog.Nop()

var logFields = struct {
	name       string
	path       string
	hash       string
	version    string
	newVersion string
	status     string
	command    string
}{
	name:       "name",
	path:       "path",
	hash:       "hash",
	version:    "version",
	newVersion: "new_version",
	status:     "status",
	command:    "command",
}
