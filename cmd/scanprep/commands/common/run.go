// SPDX-License-Identifier: Apache-2.0

package common

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"

	"github.com/probelab/scanprep/internal/config"
	"github.com/probelab/scanprep/internal/core"
	"github.com/probelab/scanprep/internal/doctor"
	"github.com/probelab/scanprep/internal/workflows"
	"github.com/probelab/scanprep/internal/workflows/steps"
	"github.com/probelab/scanprep/pkg/erx"
	"github.com/probelab/scanprep/pkg/software"
)

// RunProvisioning builds and executes the provisioning workflow from the
// loaded configuration.
func RunProvisioning(ctx context.Context, printReport bool) error {
	cfg := config.Get()

	mgr, err := software.NewManager()
	if err != nil {
		return err
	}

	det := software.NewProgramDetector(logx.As())
	tracker := workflows.NewRunTracker()

	return RunWorkflow(ctx, tracker, workflows.ProvisionWorkflow(cfg.Packages, mgr, det), printReport)
}

// RunWorkflow executes a workflow and converts its report into an error.
func RunWorkflow(ctx context.Context, tracker *workflows.RunTracker, b automa.Builder, printReport bool) error {
	wb, err := b.Build()
	if err != nil {
		tracker.Fail()
		return err
	}

	report := wb.Execute(ctx)
	return CheckWorkflowReport(ctx, tracker, report, printReport)
}

// CheckWorkflowReport replays the report into the run tracker, persists the
// report artifact, and converts a failed run into an error carrying the
// failed step's resolution instructions.
func CheckWorkflowReport(ctx context.Context, tracker *workflows.RunTracker, report *automa.Report, printReport bool) error {
	if err := workflows.ReplayRun(tracker, report); err != nil {
		logx.As().Warn().Err(err).Msg("workflow report does not replay into the run state machine")
	}

	timestamp := time.Now().Format("20060102_150405")
	reportPath := path.Join(core.ReportDir, fmt.Sprintf("provision_report_%s.yaml", timestamp))
	steps.WriteWorkflowReport(report, reportPath)
	if printReport {
		steps.WriteWorkflowReport(report, "")
	}

	logx.As().Info().
		Str("report_path", reportPath).
		Str("run_state", string(tracker.Current())).
		Str("failed_step", doctor.FirstFailedStep(report)).
		Msg("Workflow report is saved")

	if report != nil && report.Error != nil {
		if instructions := doctor.GetInstructionsFromReport(report); instructions != "" {
			if ex := errorx.Cast(report.Error); ex != nil {
				return ex.WithProperty(doctor.ErrPropertyResolution, instructions)
			}
		}

		return report.Error
	}

	// a run wound down by a canceled context without a report error still
	// counts as interrupted
	if err := ctx.Err(); err != nil {
		return erx.NewInterruptedError(err)
	}

	return nil
}
