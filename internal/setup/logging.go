// SPDX-License-Identifier: Apache-2.0

// Package setup prepares the process environment for a provisioning run:
// it brings up the run log and the diagnostic logger from the loaded
// configuration and creates the scratch directories run artifacts go to.
package setup

import (
	"path/filepath"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"

	"github.com/probelab/scanprep/internal/config"
	"github.com/probelab/scanprep/internal/core"
	"github.com/probelab/scanprep/pkg/runlog"
)

// logFields defines default log field key names
var logFields = struct {
	runLogPath string
	directory  string
}{
	runLogPath: "run_log_path",
	directory:  "directory",
}

// RunLogFilePath is the run log file under the configured log directory.
func RunLogFilePath() string {
	return filepath.Join(config.Get().LogDir, core.RunLogFileName())
}

// InitializeLogging brings up the diagnostic logger and the run log from
// the loaded configuration. A run log file that cannot be opened degrades
// the run log to console only delivery with a warning; it never fails the
// run.
func InitializeLogging() error {
	cfg := config.Get()

	if err := logx.Initialize(cfg.Log); err != nil {
		return errorx.InitializationFailed.Wrap(err, "failed to initialize diagnostic logging")
	}

	runLogPath := RunLogFilePath()
	if err := runlog.Initialize(runlog.Config{FilePath: runLogPath, Debug: cfg.Debug}); err != nil {
		logx.As().Warn().Err(err).Str(logFields.runLogPath, runLogPath).Msg("run log file is not writable")
		runlog.As().Warn("Cannot write run log file %s, continuing with console logging only", runLogPath)
	}

	return nil
}
