// SPDX-License-Identifier: Apache-2.0

package setup

import (
	"os"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"

	"github.com/probelab/scanprep/internal/core"
)

// EnsureRuntimeDirs creates the scratch directories run artifacts are
// written to.
func EnsureRuntimeDirs() error {
	for _, dir := range []string{core.TempDir, core.ReportDir, core.DiagnosticsDir} {
		if err := os.MkdirAll(dir, core.DefaultDirPerm); err != nil {
			return errorx.InitializationFailed.Wrap(err, "failed to create runtime directory %s", dir)
		}

		logx.As().Debug().Str(logFields.directory, dir).Msg("ensured runtime directory")
	}

	return nil
}
