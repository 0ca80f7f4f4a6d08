// SPDX-License-Identifier: Apache-2.0

package setup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/probelab/scanprep/internal/config"
	"github.com/probelab/scanprep/internal/core"
	"github.com/probelab/scanprep/pkg/runlog"
)

func TestRunLogFilePath_UsesConfiguredDirectory(t *testing.T) {
	cfg := config.Get()
	cfg.LogDir = t.TempDir()
	require.NoError(t, config.Set(&cfg))
	t.Cleanup(func() { require.NoError(t, config.Initialize()) })

	p := RunLogFilePath()
	require.Equal(t, cfg.LogDir, filepath.Dir(p))
	require.Equal(t, core.RunLogFileName(), filepath.Base(p))
}

func TestInitializeLogging_CreatesRunLogFile(t *testing.T) {
	cfg := config.Get()
	cfg.LogDir = t.TempDir()
	require.NoError(t, config.Set(&cfg))
	t.Cleanup(func() { require.NoError(t, config.Initialize()) })

	require.NoError(t, InitializeLogging())
	t.Cleanup(func() { _ = runlog.As().Close() })

	runlog.As().Info("logging smoke test")

	data, err := os.ReadFile(RunLogFilePath())
	require.NoError(t, err)
	require.Contains(t, string(data), "[INFO]")
	require.Contains(t, string(data), "logging smoke test")
}

func TestEnsureRuntimeDirs(t *testing.T) {
	origTemp, origReport, origDiag := core.TempDir, core.ReportDir, core.DiagnosticsDir
	t.Cleanup(func() {
		core.TempDir, core.ReportDir, core.DiagnosticsDir = origTemp, origReport, origDiag
	})

	base := t.TempDir()
	core.TempDir = filepath.Join(base, "scratch")
	core.ReportDir = filepath.Join(base, "scratch", "reports")
	core.DiagnosticsDir = filepath.Join(base, "scratch", "diagnostics")

	require.NoError(t, EnsureRuntimeDirs())

	for _, dir := range []string{core.TempDir, core.ReportDir, core.DiagnosticsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}
}
