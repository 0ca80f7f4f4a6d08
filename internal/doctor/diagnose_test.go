// SPDX-License-Identifier: Apache-2.0

package doctor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/automa-saga/automa"
	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"

	"github.com/probelab/scanprep/internal/core"
	"github.com/probelab/scanprep/pkg/erx"
	"github.com/probelab/scanprep/pkg/software"
)

func useTempDiagnosticsDir(t *testing.T) {
	t.Helper()

	orig := core.DiagnosticsDir
	core.DiagnosticsDir = filepath.Join(t.TempDir(), "diagnostics")
	t.Cleanup(func() { core.DiagnosticsDir = orig })
}

func TestDiagnose(t *testing.T) {
	useTempDiagnosticsDir(t)

	ctx := context.WithValue(context.Background(), "traceId", "trace-123")
	err := erx.NewPrivilegeError("alice")

	resp := Diagnose(ctx, err)
	require.Equal(t, "trace-123", resp.TraceId)
	require.Equal(t, 10403, resp.Code)
	require.Equal(t, os.Getpid(), resp.Pid)
	require.Contains(t, resp.Resolution[0], "sudo")

	snapshot, ok := resp.Snapshots["stacktrace"]
	require.True(t, ok)
	_, statErr := os.Stat(snapshot)
	require.NoError(t, statErr)
}

func TestToErrorCode(t *testing.T) {
	require.Equal(t, 10130, toErrorCode(erx.NewInterruptedError(nil)))
	require.Equal(t, 10403, toErrorCode(erx.NewUnsupportedOSError("fedora")))
	require.Equal(t, 10400, toErrorCode(errorx.IllegalArgument.New("bad")))
	require.Equal(t, 10500, toErrorCode(errorx.IllegalState.New("broken")))
}

func TestFindResolution_PropertyWins(t *testing.T) {
	err := errorx.IllegalState.New("boom").
		WithProperty(ErrPropertyResolution, "Do the thing.\nThen retry.")

	steps := findResolution(err)
	require.Equal(t, []string{"Do the thing.", "Then retry."}, steps)
}

func TestFindResolution_InstallationError(t *testing.T) {
	err := software.NewInstallationError(nil, "nmap")

	steps := findResolution(err)
	require.Contains(t, steps[0], `"nmap"`)
}

func TestGetInstructionsFromReport(t *testing.T) {
	require.Empty(t, GetInstructionsFromReport(nil))

	report := &automa.Report{
		StepReports: []*automa.Report{
			{Id: "first"},
			{Id: "second", Metadata: map[string]string{"instructions": "run this"}},
		},
	}
	require.Equal(t, "run this", GetInstructionsFromReport(report))
}

func TestFirstFailedStep(t *testing.T) {
	report := &automa.Report{
		StepReports: []*automa.Report{
			{Id: "ok-step", Status: automa.StatusSuccess},
			{Id: "bad-step", Status: automa.StatusFailed},
		},
	}
	require.Equal(t, "bad-step", FirstFailedStep(report))
	require.Empty(t, FirstFailedStep(nil))
}
