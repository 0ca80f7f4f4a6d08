// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"

	"github.com/automa-saga/automa"

	"github.com/probelab/scanprep/internal/workflows/notify"
	"github.com/probelab/scanprep/pkg/software"
)

// RefreshPackageIndex refreshes the package manager index so install and
// upgrade decisions are made against current metadata.
func RefreshPackageIndex(mgr software.Manager) automa.Builder {
	return automa.NewStepBuilder().WithId(StepRefreshIndex).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if err := mgr.RefreshIndex(); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Refreshing package index")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to refresh package index")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Package index refreshed")
		})
}

// UpgradeInstalledPackages upgrades every installed package to its
// candidate version before any new package is installed.
func UpgradeInstalledPackages(mgr software.Manager) automa.Builder {
	return automa.NewStepBuilder().WithId(StepUpgradeSystem).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if err := mgr.UpgradeAll(); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Upgrading installed packages")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to upgrade installed packages")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Installed packages upgraded")
		})
}
