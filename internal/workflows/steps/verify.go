// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"

	"github.com/probelab/scanprep/internal/version"
	"github.com/probelab/scanprep/internal/workflows/notify"
	"github.com/probelab/scanprep/pkg/runlog"
	"github.com/probelab/scanprep/pkg/software"
)

// VerifyProgram confirms the program a package was expected to ship is
// resolvable on the search path, executable, and reports a version.
func VerifyProgram(det software.ProgramDetector, name string) automa.Builder {
	return automa.NewStepBuilder().WithId(StepVerifyPrefix + name).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			info, err := det.GetProgramInfo(name)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			if !info.IsExecAny() {
				return automa.FailureReport(stp, automa.WithError(
					errorx.IllegalState.New("program %s at %s is not executable", name, info.Path)))
			}

			meta := map[string]string{
				KeyPath:    info.Path,
				KeyVersion: info.Version,
				KeyHash:    info.SHA256,
			}

			if normalized, ok := version.Extract(info.Version); ok {
				logx.As().Debug().
					Str("program", name).
					Str("version", normalized).
					Msg("normalized program version")
			}

			runlog.As().Info("Program %s reports %q at %s", name, info.Version, info.Path)
			return automa.SuccessReport(stp, automa.WithMetadata(meta))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Verifying program %s", name)
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Program %s verification failed", name)
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Program %s verified", name)
		})
}
