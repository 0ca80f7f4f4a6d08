// SPDX-License-Identifier: Apache-2.0

// Package core carries application wide constants and derived paths.
package core

import (
	"os"
	"path"
	"path/filepath"
)

const (
	// AppName is the canonical binary name.
	AppName = "scanprep"

	DefaultDirPerm  = 0755
	DefaultFilePerm = 0644
)

var (
	// TargetPackages are the packages a provisioning run installs and
	// verifies, in order.
	TargetPackages = []string{"nmap"}

	// LogDir is where the run log lives.
	LogDir = "/var/log"

	// TempDir is the scratch space for run artifacts.
	TempDir = path.Join("/tmp", AppName)

	// ReportDir receives the workflow report written after each run.
	ReportDir = TempDir

	// DiagnosticsDir receives error diagnostics snapshots.
	DiagnosticsDir = path.Join(TempDir, "diagnostics")
)

// RunLogFileName is the run log file name, derived from the invoking
// executable so renamed or symlinked installs log under their own name.
func RunLogFileName() string {
	base := filepath.Base(os.Args[0])
	if base == "" || base == "." || base == string(os.PathSeparator) {
		base = AppName
	}

	return base + ".log"
}

// RunLogPath is the run log file under the default log directory.
func RunLogPath() string {
	return filepath.Join(LogDir, RunLogFileName())
}
