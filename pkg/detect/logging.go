// SPDX-License-Identifier: Apache-2.0

package detect

import "github.com/rs/zerolog"

var nolog = zerolog.Nop()

var logFields = struct {
	osType        string
	osVersion     string
	osCodename    string
	osFlavor      string
	osArch        string
	osDescription string
}{
	osType:        "os_type",
	osVersion:     "os_version",
	osCodename:    "os_codename",
	osFlavor:      "os_flavor",
	osArch:        "os_architecture",
	osDescription: "os_description",
}
