// SPDX-License-Identifier: Apache-2.0

// Package detect identifies the host operating system from its release
// metadata. Provisioning uses it to decide whether the host belongs to the
// apt based Debian family before any package operation runs.
package detect

// OSInfo defines the data model to contain OS related information
type OSInfo struct {
	Type         string
	Version      string
	Flavor       string
	CodeName     string
	Architecture string

	// Description is the self reported name of the release, such as
	// "Ubuntu 22.04.4 LTS". It may be empty when the release files do not
	// carry one.
	Description string
}

// String renders the OS for human readable output, preferring the release
// description when one was detected.
func (i *OSInfo) String() string {
	if i.Description != "" {
		return i.Description
	}

	s := i.Flavor
	if s == "" || s == OSFlavorUnknown {
		s = i.Type
	}
	if i.Version != "" {
		s += " " + i.Version
	}
	if i.CodeName != "" {
		s += " (" + i.CodeName + ")"
	}

	return s
}

// IsAptBased reports whether the detected OS installs software through apt.
func (i *OSInfo) IsAptBased() bool {
	_, ok := aptBasedFlavors[i.Flavor]
	return ok
}

// OSManager defines various OS related functionalities
type OSManager interface {
	// GetOSInfo returns OS related information
	GetOSInfo() (*OSInfo, error)
}

// OSDetector provides interface to detect OS related details
type OSDetector interface {
	ScanOS() (*OSInfo, error)
}
