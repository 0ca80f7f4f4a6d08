// SPDX-License-Identifier: Apache-2.0

// Package workflows composes the provisioning run out of automa steps and
// tracks its progress through the run state machine.
package workflows

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"

	"github.com/probelab/scanprep/internal/config"
	"github.com/probelab/scanprep/internal/doctor"
	"github.com/probelab/scanprep/internal/workflows/notify"
	"github.com/probelab/scanprep/internal/workflows/steps"
	"github.com/probelab/scanprep/pkg/detect"
	"github.com/probelab/scanprep/pkg/erx"
	"github.com/probelab/scanprep/pkg/hardware"
	"github.com/probelab/scanprep/pkg/runlog"
	"github.com/probelab/scanprep/pkg/security/principal"
	"github.com/probelab/scanprep/pkg/software"
)

// Seams for tests; production code never reassigns these.
var (
	currentProcess = principal.Current

	osManager detect.OSManager = detect.NewOSManager()

	aptAvailable = software.IsAvailable
)

// CheckPrivilegesStep validates that the current user has superuser privileges
func CheckPrivilegesStep() automa.Builder {
	return automa.NewStepBuilder().WithId(steps.StepCheckPrivileges).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			proc, err := currentProcess()
			if err != nil {
				if proc == nil {
					return automa.FailureReport(stp, automa.WithError(err))
				}
				// the uid alone decides; a failed user database lookup
				// only costs the username in the report
				logx.As().Debug().Err(err).Msg("user database lookup failed, deciding on uid alone")
			}

			if !proc.IsSuperuser() {
				return automa.FailureReport(stp, automa.WithError(
					erx.NewPrivilegeError(proc.Username()).
						WithProperty(doctor.ErrPropertyResolution,
							fmt.Sprintf("Run the command with 'sudo' or as the root user: `sudo %s`",
								strings.Join(os.Args, " ")))))
			}

			meta := map[string]string{
				"uid":  strconv.Itoa(proc.Uid()),
				"user": proc.Username(),
			}

			return automa.SuccessReport(stp, automa.WithMetadata(meta))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Checking for superuser privileges")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Superuser privilege check failed")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Superuser privileges confirmed")
		})
}

// CheckOSStep validates that the host runs an apt based distribution the
// package manager can drive.
func CheckOSStep() automa.Builder {
	return automa.NewStepBuilder().WithId(steps.StepCheckOS).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			info, err := osManager.GetOSInfo()
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			if config.Get().Debug {
				logx.As().Debug().
					Str("host_profile", hardware.GetHostProfile().String()).
					Msg("host profile")
			}

			if !info.IsAptBased() {
				return automa.FailureReport(stp, automa.WithError(
					erx.NewUnsupportedOSError(info.String())))
			}

			if !aptAvailable() {
				return automa.FailureReport(stp, automa.WithError(
					erx.NewUnsupportedOSError(info.String()).
						WithProperty(doctor.ErrPropertyResolution,
							"The distribution looks apt based but no apt package manager was found on the search path.")))
			}

			runlog.As().Info("Detected %s", info.String())

			meta := map[string]string{
				"os_type": info.Type,
				"flavor":  info.Flavor,
				"version": info.Version,
			}

			return automa.SuccessReport(stp, automa.WithMetadata(meta))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Checking operating system compatibility")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Operating system check failed")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Operating system is supported")
		})
}
