// SPDX-License-Identifier: Apache-2.0

// Package steps holds the individual workflow steps a provisioning run is
// composed of.
package steps

const (
	StepRefreshIndex  = "refresh-package-index"
	StepUpgradeSystem = "upgrade-installed-packages"

	// Install and verify step ids carry the package or program name as a
	// suffix, e.g. install-nmap.
	StepInstallPrefix = "install-"
	StepVerifyPrefix  = "verify-"

	StepCheckPrivileges = "check-privileges"
	StepCheckOS         = "check-os"
)

// Report metadata keys.
const (
	AlreadyInstalled    = "alreadyInstalled"
	InstalledByThisStep = "installed"
	UpgradedByThisStep  = "upgraded"

	KeyVersion = "version"
	KeyPath    = "path"
	KeyHash    = "sha256"
)
