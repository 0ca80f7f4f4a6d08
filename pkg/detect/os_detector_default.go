// SPDX-License-Identifier: Apache-2.0

//go:build !darwin

package detect

// NewOSDetector returns the detector for the current platform.
func NewOSDetector() OSDetector {
	return NewUnixOSDetector()
}
