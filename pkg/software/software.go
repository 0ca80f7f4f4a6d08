// SPDX-License-Identifier: Apache-2.0

// Package software manages system packages and the programs they ship.
//
// The Manager interface is the narrow capability set provisioning depends
// on: refresh the package index, upgrade the whole system, query installed
// and upgradable state of a package, and install (or upgrade in place) a
// package. The real implementation drives the host package manager through
// syspkg; FakeManager provides a scriptable in-memory double for tests.
package software

import "github.com/bluet/syspkg/manager"

// VersionUnknown is reported when an installed program produces no
// parseable version output.
const VersionUnknown = "version unknown"

// PackageState describes what the package manager knows about one package.
type PackageState struct {
	// Name is the package name as known to the package manager.
	Name string
	// Version is the currently installed version, empty when not installed.
	Version string
	// NewVersion is the candidate version offered by the package index,
	// empty when the index offers nothing newer.
	NewVersion string
	// Installed reports whether the package is installed.
	Installed bool
}

// Manager abstracts the host package manager. All operations run
// non-interactively and block until the underlying tool completes.
type Manager interface {
	// RefreshIndex refreshes the package index (apt-get update).
	RefreshIndex() error

	// UpgradeAll upgrades every installed package to its candidate version
	// (apt-get upgrade -y).
	UpgradeAll() error

	// IsInstalled reports whether the named package is installed.
	IsInstalled(name string) (bool, error)

	// HasUpgrade reports whether the named package has a newer candidate
	// version pending. The package must be installed for the answer to be
	// meaningful.
	HasUpgrade(name string) (bool, error)

	// Install installs the named package, or upgrades it in place when it
	// is already installed with a pending upgrade. The returned state
	// reflects the package after the operation.
	Install(name string) (*PackageState, error)
}

// nonInteractiveOptions are the syspkg options every operation runs with.
// Prompts are suppressed and defaults assumed, as required for unattended
// provisioning.
func nonInteractiveOptions() *manager.Options {
	return &manager.Options{
		DryRun:      false,
		Interactive: false,
		AssumeYes:   true,
	}
}
