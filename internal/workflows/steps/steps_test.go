// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"testing"

	"github.com/automa-saga/automa"
	"github.com/stretchr/testify/require"

	"github.com/probelab/scanprep/internal/workflows/notify"
	"github.com/probelab/scanprep/pkg/runlog"
	"github.com/probelab/scanprep/pkg/software"
)

// executeStep runs a single step builder inside a throwaway workflow and
// returns the step report.
func executeStep(t *testing.T, b automa.Builder) *automa.Report {
	t.Helper()

	workflow, err := automa.NewWorkflowBuilder().WithId("test-workflow").Steps(b).Build()
	require.NoError(t, err)

	report := workflow.Execute(context.Background())
	require.NotNil(t, report)
	require.Len(t, report.StepReports, 1)
	return report.StepReports[0]
}

// captureRunLog routes notifications and the package default run log to an
// in-memory capture for the duration of the test.
func captureRunLog(t *testing.T) *runlog.Capture {
	t.Helper()

	capture := &runlog.Capture{}
	orig := *notify.As()
	notify.UseSink(capture)
	t.Cleanup(func() { notify.SetDefault(&orig) })
	return capture
}

func TestRefreshPackageIndex(t *testing.T) {
	captureRunLog(t)

	mgr := software.NewFakeManager()
	report := executeStep(t, RefreshPackageIndex(mgr))

	require.Equal(t, automa.StatusSuccess, report.Status)
	require.Equal(t, []string{"refresh-index"}, mgr.Calls())
}

func TestRefreshPackageIndex_Failure(t *testing.T) {
	captureRunLog(t)

	mgr := software.NewFakeManager()
	mgr.RefreshErr = software.NewPackageManagerError(nil, "update")

	report := executeStep(t, RefreshPackageIndex(mgr))
	require.Equal(t, automa.StatusFailed, report.Status)
	require.Error(t, report.Error)
}

func TestUpgradeInstalledPackages(t *testing.T) {
	captureRunLog(t)

	mgr := software.NewFakeManager()
	report := executeStep(t, UpgradeInstalledPackages(mgr))

	require.Equal(t, automa.StatusSuccess, report.Status)
	require.Equal(t, []string{"upgrade-all"}, mgr.Calls())
}

func TestInstallPackage_FreshInstall(t *testing.T) {
	captureRunLog(t)

	mgr := software.NewFakeManager()
	mgr.Packages["nmap"] = &software.FakePackage{NewVersion: "7.94+dfsg1-1"}

	report := executeStep(t, InstallPackage(mgr, "nmap"))

	require.Equal(t, automa.StatusSuccess, report.Status)
	require.Equal(t, "true", report.Metadata[InstalledByThisStep])
	require.Equal(t, "7.94+dfsg1-1", report.Metadata[KeyVersion])
	require.Equal(t, []string{"is-installed:nmap", "install:nmap"}, mgr.Calls())
}

func TestInstallPackage_AlreadyInstalledUpToDate(t *testing.T) {
	captureRunLog(t)

	mgr := software.NewFakeManager()
	mgr.Packages["nmap"] = &software.FakePackage{Installed: true, Version: "7.94+dfsg1-1"}

	report := executeStep(t, InstallPackage(mgr, "nmap"))

	require.Equal(t, automa.StatusSuccess, report.Status)
	require.Equal(t, "true", report.Metadata[AlreadyInstalled])
	require.Equal(t, []string{"is-installed:nmap", "has-upgrade:nmap"}, mgr.Calls())
}

func TestInstallPackage_UpgradeInPlace(t *testing.T) {
	captureRunLog(t)

	mgr := software.NewFakeManager()
	mgr.Packages["nmap"] = &software.FakePackage{
		Installed:  true,
		Version:    "7.80",
		NewVersion: "7.94+dfsg1-1",
	}

	report := executeStep(t, InstallPackage(mgr, "nmap"))

	require.Equal(t, automa.StatusSuccess, report.Status)
	require.Equal(t, "true", report.Metadata[UpgradedByThisStep])
	require.Equal(t, "7.94+dfsg1-1", report.Metadata[KeyVersion])
	require.Equal(t, []string{"is-installed:nmap", "has-upgrade:nmap", "install:nmap"}, mgr.Calls())
}

func TestInstallPackage_InstallFailure(t *testing.T) {
	captureRunLog(t)

	mgr := software.NewFakeManager()
	mgr.Packages["nmap"] = &software.FakePackage{
		InstallErr: software.NewPackageManagerError(nil, "install"),
	}

	report := executeStep(t, InstallPackage(mgr, "nmap"))
	require.Equal(t, automa.StatusFailed, report.Status)
	require.Error(t, report.Error)
}
