// SPDX-License-Identifier: Apache-2.0

package software

import (
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"
)

func TestFakeManager_InstalledAndUpgradableQueries(t *testing.T) {
	fake := NewFakeManager()
	fake.Packages["nmap"] = &FakePackage{Installed: true, Version: "7.91", NewVersion: "7.94"}
	fake.Packages["curl"] = &FakePackage{Installed: true, Version: "8.5.0"}

	installed, err := fake.IsInstalled("nmap")
	require.NoError(t, err)
	require.True(t, installed)

	installed, err = fake.IsInstalled("htop")
	require.NoError(t, err)
	require.False(t, installed)

	upgradable, err := fake.HasUpgrade("nmap")
	require.NoError(t, err)
	require.True(t, upgradable)

	upgradable, err = fake.HasUpgrade("curl")
	require.NoError(t, err)
	require.False(t, upgradable)

	// not installed packages never report a pending upgrade
	upgradable, err = fake.HasUpgrade("htop")
	require.NoError(t, err)
	require.False(t, upgradable)
}

func TestFakeManager_InstallMutatesState(t *testing.T) {
	fake := NewFakeManager()
	fake.Packages["nmap"] = &FakePackage{Installed: true, Version: "7.91", NewVersion: "7.94"}

	state, err := fake.Install("nmap")
	require.NoError(t, err)
	require.True(t, state.Installed)
	require.Equal(t, "7.94", state.Version)

	// the upgrade is consumed, a second query reports up to date
	upgradable, err := fake.HasUpgrade("nmap")
	require.NoError(t, err)
	require.False(t, upgradable)
}

func TestFakeManager_InstallUnknownPackage(t *testing.T) {
	fake := NewFakeManager()

	state, err := fake.Install("nmap")
	require.NoError(t, err)
	require.True(t, state.Installed)
	require.NotEmpty(t, state.Version)

	installed, err := fake.IsInstalled("nmap")
	require.NoError(t, err)
	require.True(t, installed)
}

func TestFakeManager_ScriptedFailures(t *testing.T) {
	fake := NewFakeManager()
	fake.RefreshErr = errorx.IllegalState.New("index refresh failed")
	fake.UpgradeAllErr = errorx.IllegalState.New("upgrade failed")
	fake.Packages["nmap"] = &FakePackage{InstallErr: errorx.IllegalState.New("dpkg lock held")}

	require.Error(t, fake.RefreshIndex())
	require.Error(t, fake.UpgradeAll())

	_, err := fake.Install("nmap")
	require.Error(t, err)
	require.True(t, errorx.IsOfType(err, InstallationError))

	name, ok := PackageNameOf(err)
	require.True(t, ok)
	require.Equal(t, "nmap", name)
}

func TestFakeManager_RecordsCallsInOrder(t *testing.T) {
	fake := NewFakeManager()

	require.NoError(t, fake.RefreshIndex())
	require.NoError(t, fake.UpgradeAll())
	_, _ = fake.IsInstalled("nmap")
	_, _ = fake.Install("nmap")

	require.Equal(t, []string{
		"refresh-index",
		"upgrade-all",
		"is-installed:nmap",
		"install:nmap",
	}, fake.Calls())
}
