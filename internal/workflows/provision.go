// SPDX-License-Identifier: Apache-2.0

package workflows

import (
	"github.com/automa-saga/automa"

	"github.com/probelab/scanprep/internal/workflows/steps"
	"github.com/probelab/scanprep/pkg/runlog"
	"github.com/probelab/scanprep/pkg/software"
)

// ProvisionWorkflowId identifies the full provisioning run.
const ProvisionWorkflowId = "provision"

// ProvisionWorkflow builds the complete provisioning run: preflight checks,
// package index refresh, full system upgrade, then an install and verify
// pair per target package. Execution stops at the first failed step.
func ProvisionWorkflow(packages []string, mgr software.Manager, det software.ProgramDetector) *automa.WorkflowBuilder {
	if len(packages) == 0 {
		runlog.As().Warn("No target packages configured, only system update will run")
	}

	builders := []automa.Builder{
		CheckPrivilegesStep(),
		CheckOSStep(),
		steps.RefreshPackageIndex(mgr),
		steps.UpgradeInstalledPackages(mgr),
	}

	for _, name := range packages {
		builders = append(builders,
			steps.InstallPackage(mgr, name),
			steps.VerifyProgram(det, name),
		)
	}

	return automa.NewWorkflowBuilder().
		WithId(ProvisionWorkflowId).
		Steps(builders...)
}

// ProvisionStepIds returns the step ids of a provisioning run for the given
// packages, in execution order. The run tracker is replayed against this
// order after the workflow finishes.
func ProvisionStepIds(packages []string) []string {
	ids := []string{
		steps.StepCheckPrivileges,
		steps.StepCheckOS,
		steps.StepRefreshIndex,
		steps.StepUpgradeSystem,
	}

	for _, name := range packages {
		ids = append(ids, steps.StepInstallPrefix+name, steps.StepVerifyPrefix+name)
	}

	return ids
}

// ReplayRun drives the tracker from a finished workflow report: every
// successfully completed step advances the machine, the first failure marks
// the run failed, and a fully successful run ends done.
func ReplayRun(tracker *RunTracker, report *automa.Report) error {
	if report == nil {
		tracker.Fail()
		return nil
	}

	for _, stepReport := range report.StepReports {
		if stepReport.Status == automa.StatusFailed {
			tracker.Fail()
			return nil
		}

		if err := tracker.AdvanceForStep(stepReport.Id); err != nil {
			return err
		}
	}

	if report.Status == automa.StatusSuccess {
		return tracker.Advance(StateDone)
	}

	tracker.Fail()
	return nil
}
