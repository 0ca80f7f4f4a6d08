// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"

	"github.com/automa-saga/automa"

	"github.com/probelab/scanprep/internal/workflows/notify"
	"github.com/probelab/scanprep/pkg/runlog"
	"github.com/probelab/scanprep/pkg/software"
)

// InstallPackage ensures the named package is installed and current. An
// installed package with no pending upgrade is left alone, an installed
// package with a pending upgrade is upgraded in place, and a missing
// package is installed fresh.
func InstallPackage(mgr software.Manager, name string) automa.Builder {
	return automa.NewStepBuilder().WithId(StepInstallPrefix + name).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			meta := map[string]string{}

			installed, err := mgr.IsInstalled(name)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			if installed {
				upgradable, err := mgr.HasUpgrade(name)
				if err != nil {
					return automa.FailureReport(stp, automa.WithError(err))
				}

				if !upgradable {
					runlog.As().Info("Package %s is already installed and up to date, skipping installation", name)
					meta[AlreadyInstalled] = "true"
					return automa.SuccessReport(stp, automa.WithMetadata(meta))
				}

				runlog.As().Info("Package %s is already installed with an upgrade pending, upgrading in place", name)
				meta[UpgradedByThisStep] = "true"
			} else {
				runlog.As().Info("Package %s is not installed, installing", name)
				meta[InstalledByThisStep] = "true"
			}

			state, err := mgr.Install(name)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			if state.Version != "" {
				meta[KeyVersion] = state.Version
			}

			return automa.SuccessReport(stp, automa.WithMetadata(meta))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Provisioning package %s", name)
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to provision package %s", name)
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Package %s is installed and current", name)
		})
}
