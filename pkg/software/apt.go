// SPDX-License-Identifier: Apache-2.0

package software

import (
	"errors"
	"os/exec"
	"regexp"
	"strings"
	"sync"

	"github.com/bluet/syspkg"
	"github.com/bluet/syspkg/manager"
	"github.com/rs/zerolog"

	"github.com/probelab/scanprep/pkg/erx"
	"github.com/probelab/scanprep/pkg/exit"
)

var (
	sysPkgManager syspkg.PackageManager
	once          sync.Once
)

// getSysPackageManager returns the process-wide syspkg package manager.
// Detection runs once; syspkg picks the first available backend, which on
// the supported Debian family is apt.
func getSysPackageManager() (syspkg.PackageManager, error) {
	var initErr error
	once.Do(func() {
		includeOptions := syspkg.IncludeOptions{AllAvailable: true}
		registry, err := syspkg.New(includeOptions)
		if err != nil {
			initErr = NewPackageManagerError(err, "detect")
			return
		}

		pm, err := registry.GetPackageManager("") // empty returns first available
		if err != nil {
			initErr = NewPackageManagerError(err, "detect")
			return
		}

		sysPkgManager = pm
	})

	if initErr != nil {
		return nil, initErr
	}

	if sysPkgManager == nil {
		return nil, NewPackageManagerError(nil, "detect")
	}

	return sysPkgManager, nil
}

// IsAvailable reports whether a supported system package manager was
// detected on this host. The environment check uses it to reject hosts
// outside the apt family before any mutation is attempted.
func IsAvailable() bool {
	pm, err := getSysPackageManager()
	return err == nil && pm != nil
}

// runCmd executes a shell command and returns its combined output. It is a
// package variable so tests can substitute a recording fake.
var runCmd = func(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).CombinedOutput()
	return string(out), err
}

// upgradableLineRe matches one line of `apt list --upgradable` output:
//
//	nmap/jammy-updates 7.94+dfsg1-1 amd64 [upgradable from: 7.91+dfsg1-1]
var upgradableLineRe = regexp.MustCompile(`^([^/\s]+)/\S+\s+(\S+)\s+\S+\s+\[upgradable from:\s+([^\]]+)\]`)

// aptManager implements Manager on top of syspkg, shelling out to apt-get
// directly for the operations syspkg does not model.
type aptManager struct {
	pm     syspkg.PackageManager
	logger *zerolog.Logger
}

var _ Manager = (*aptManager)(nil)

type aptOption func(*aptManager)

// WithSysPackageManager injects a syspkg backend, primarily for tests.
func WithSysPackageManager(pm syspkg.PackageManager) aptOption {
	return func(am *aptManager) {
		if pm != nil {
			am.pm = pm
		}
	}
}

// WithLogger injects a diagnostic logger.
func WithLogger(logger *zerolog.Logger) aptOption {
	return func(am *aptManager) {
		if logger != nil {
			am.logger = logger
		}
	}
}

// NewManager returns a Manager backed by the host package manager.
func NewManager(opts ...aptOption) (Manager, error) {
	am := &aptManager{logger: &nolog}

	for _, opt := range opts {
		opt(am)
	}

	if am.pm == nil {
		pm, err := getSysPackageManager()
		if err != nil {
			return nil, err
		}
		am.pm = pm
	}

	return am, nil
}

func (am *aptManager) RefreshIndex() error {
	err := am.pm.Refresh(nonInteractiveOptions())
	if err != nil {
		return NewPackageManagerError(err, "refresh-index")
	}

	return nil
}

// UpgradeAll shells out to apt-get because syspkg only models per-package
// upgrades. DEBIAN_FRONTEND suppresses dpkg configuration prompts.
func (am *aptManager) UpgradeAll() error {
	const upgradeCommand = "apt-get upgrade -y"

	out, err := runCmd("env", "DEBIAN_FRONTEND=noninteractive", "apt-get", "upgrade", "-y")
	if err != nil {
		am.logger.Debug().
			Str(logFields.command, upgradeCommand).
			Str("output", strings.TrimSpace(out)).
			Msg("full system upgrade failed")

		code := exit.GeneralError
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exit.Code(exitErr.ExitCode())
		}

		return erx.NewCommandError(err, upgradeCommand, code)
	}

	return nil
}

func (am *aptManager) IsInstalled(name string) (bool, error) {
	state, err := am.find(name)
	if err != nil {
		return false, err
	}

	return state != nil && state.Installed, nil
}

// HasUpgrade prefers the candidate version reported by syspkg and falls
// back to parsing `apt list --upgradable` when the backend reports no
// candidate at all.
func (am *aptManager) HasUpgrade(name string) (bool, error) {
	state, err := am.find(name)
	if err != nil {
		return false, err
	}

	if state == nil || !state.Installed {
		return false, nil
	}

	if state.NewVersion != "" {
		return state.NewVersion != state.Version, nil
	}

	return am.hasUpgradeFromAptList(name)
}

func (am *aptManager) hasUpgradeFromAptList(name string) (bool, error) {
	out, err := runCmd("apt", "list", "--upgradable", name)
	if err != nil {
		return false, NewQueryError(err, name)
	}

	for _, line := range strings.Split(out, "\n") {
		m := upgradableLineRe.FindStringSubmatch(strings.TrimSpace(line))
		if m != nil && m[1] == name {
			am.logger.Debug().
				Str(logFields.name, name).
				Str(logFields.version, m[3]).
				Str(logFields.newVersion, m[2]).
				Msg("pending upgrade detected")
			return true, nil
		}
	}

	return false, nil
}

func (am *aptManager) Install(name string) (*PackageState, error) {
	_, err := am.pm.Install([]string{name}, nonInteractiveOptions())
	if err != nil {
		return nil, NewInstallationError(err, name)
	}

	state, err := am.find(name)
	if err != nil {
		return nil, err
	}

	if state == nil || !state.Installed {
		return nil, NewInstallationError(nil, name)
	}

	am.logger.Debug().
		Str(logFields.name, state.Name).
		Str(logFields.version, state.Version).
		Msg("package installed")

	return state, nil
}

// find queries the package database through syspkg. Find is used instead of
// ListInstalled because the apt backend of ListInstalled also reports
// packages whose files are gone but whose configuration remains.
func (am *aptManager) find(name string) (*PackageState, error) {
	resp, err := am.pm.Find([]string{name}, nonInteractiveOptions())
	if err != nil {
		return nil, NewQueryError(err, name)
	}

	for _, pkg := range resp {
		if pkg.Name != name {
			continue
		}

		return &PackageState{
			Name:       pkg.Name,
			Version:    pkg.Version,
			NewVersion: pkg.NewVersion,
			Installed:  pkg.Status == manager.PackageStatusInstalled,
		}, nil
	}

	return nil, nil
}
