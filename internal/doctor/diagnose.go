// SPDX-License-Identifier: Apache-2.0

// Package doctor turns run failures into an operator facing diagnosis: a
// classified error code, resolution steps and a stack trace snapshot on
// disk.
package doctor

import (
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"

	"github.com/probelab/scanprep/internal/core"
	"github.com/probelab/scanprep/internal/setup"
	"github.com/probelab/scanprep/internal/version"
	"github.com/probelab/scanprep/pkg/erx"
	"github.com/probelab/scanprep/pkg/software"
)

// ErrPropertyResolution carries step specific resolution instructions on an
// error. The diagnosis prints them ahead of the classified defaults.
var ErrPropertyResolution = errorx.RegisterPrintableProperty("resolution")

type ErrorDiagnosis struct {
	Error      error             `yaml:"error" json:"error"`
	Message    string            `yaml:"message" json:"message"`
	Cause      string            `yaml:"cause" json:"cause"`
	ErrorType  string            `yaml:"errorType" json:"errorType"`
	TraceId    string            `yaml:"traceId" json:"traceId"`
	Commit     string            `yaml:"commit" json:"commit"`
	Version    string            `yaml:"version" json:"version"`
	Pid        int               `yaml:"pid" json:"pid"`
	Code       int               `yaml:"code" json:"code"`
	Logfile    string            `yaml:"log" json:"log"`
	Snapshots  map[string]string `yaml:"snapshots" json:"snapshots"`
	Resolution []string          `yaml:"steps" json:"steps"`
}

func toErrorCode(err error) int {
	switch {
	case erx.IsInterrupted(err):
		return 10130
	case erx.IsPrecondition(err):
		return 10403
	case errorx.IsOfType(err, errorx.IllegalArgument):
		return 10400
	default:
		if errorx.HasTrait(err, errorx.NotFound()) {
			return 10404
		}
		return 10500
	}
}

func toErrorMessage(err error) (string, string) {
	e := errorx.Cast(err)
	if e == nil {
		return err.Error(), ""
	}

	return e.Message(), fmt.Sprintf("%s", e.Cause())
}

func findResolution(err error) []string {
	if ex := errorx.Cast(err); ex != nil {
		if v, ok := ex.Property(ErrPropertyResolution); ok {
			if steps, ok := v.(string); ok && steps != "" {
				return strings.Split(steps, "\n")
			}
		}
	}

	switch {
	case errorx.IsOfType(err, erx.PrivilegeError):
		return []string{"Re-run the command with sudo or as the root user."}
	case errorx.IsOfType(err, erx.UnsupportedOSError):
		return []string{"Run on a Debian or Ubuntu host where the apt package manager is available."}
	case errorx.IsOfType(err, erx.InterruptedError):
		return []string{"Re-run the command to resume provisioning; completed steps are idempotent."}
	case errorx.IsOfType(err, software.InstallationError):
		if name, ok := software.PackageNameOf(err); ok {
			return []string{
				fmt.Sprintf("Check that package %q exists in the configured apt repositories.", name),
				"Run 'apt-get update' and retry.",
			}
		}
		return []string{"Run 'apt-get update' and retry the installation."}
	case errorx.IsOfType(err, erx.CommandError):
		if cmd, ok := erx.CommandOf(err); ok {
			return []string{fmt.Sprintf("Inspect the output of %q, resolve the reported problem and retry.", cmd)}
		}
		return []string{"Inspect the failed command output, resolve the reported problem and retry."}
	case errorx.IsOfType(err, errorx.IllegalArgument):
		return []string{"Ensure all required arguments are provided."}
	default:
		return []string{"Check the run log for details or contact support."}
	}
}

// takeDiagnosticsSnapshot writes the error stack trace (or the current
// goroutine stacks when no error carries one) under the diagnostics
// directory.
func takeDiagnosticsSnapshot(ex error) map[string]string {
	timestamp := time.Now().Format("20060102-150405")

	snapshotDir := path.Join(core.DiagnosticsDir, timestamp)
	if err := os.MkdirAll(snapshotDir, core.DefaultDirPerm); err != nil {
		log.Printf("failed to create diagnostics directory: %v", err)
		return nil
	}

	files := make(map[string]string)

	stacktraceFile := filepath.Join(snapshotDir, "stacktrace-"+timestamp+".txt")
	f, err := os.Create(stacktraceFile)
	if err != nil {
		log.Printf("failed to create stack trace file: %v", err)
		return files
	}
	defer f.Close()

	if ex != nil {
		_, _ = fmt.Fprintf(f, "%+v\n", ex)
	} else {
		buf := make([]byte, 1<<16)
		n := runtime.Stack(buf, true)
		_, _ = f.Write(buf[:n])
	}
	files["stacktrace"] = stacktraceFile

	return files
}

// Diagnose attempts to find a resolution and provide a human friendly error response
func Diagnose(ctx context.Context, ex error) *ErrorDiagnosis {
	var traceId string
	if v, ok := ctx.Value("traceId").(string); ok {
		traceId = v
	}

	msg, cause := toErrorMessage(ex)
	return &ErrorDiagnosis{
		Error:      ex,
		ErrorType:  errorx.GetTypeName(ex),
		Message:    msg,
		Cause:      cause,
		TraceId:    traceId,
		Code:       toErrorCode(ex),
		Commit:     version.Commit(),
		Version:    version.Number(),
		Pid:        os.Getpid(),
		Logfile:    setup.RunLogFilePath(),
		Snapshots:  takeDiagnosticsSnapshot(ex),
		Resolution: findResolution(ex),
	}
}

// Explain prints the diagnosis without terminating the process, so callers
// can still run their own finalization. Optional instructions are printed
// ahead of the classified resolution steps.
func Explain(ctx context.Context, err error, instructions ...string) {
	logx.As().Error().Err(err).Msg("error occurred")
	resp := Diagnose(ctx, err)

	fmt.Printf("\n%s%s************************************** Error Diagnostics ******************************************%s\n", Bold, Red, Reset)
	fmt.Printf("%s*%s\t%sError:%s %s\n", Red, Reset, Bold+White, Reset, resp.Message)
	if resp.Cause != "" {
		fmt.Printf("%s*%s\t%sCause:%s %s\n", Red, Reset, Bold+White, Reset, resp.Cause)
	}
	fmt.Printf("%s*%s\t%sError Type:%s %s\n", Red, Reset, Bold+White, Reset, resp.ErrorType)
	fmt.Printf("%s*%s\t%sError Code:%s %d\n", Red, Reset, Bold+White, Reset, resp.Code)
	fmt.Printf("%s*%s\t%sCommit:%s %s\n", Red, Reset, Gray, Reset, resp.Commit)
	fmt.Printf("%s*%s\t%sPid:%s %d\n", Red, Reset, Gray, Reset, resp.Pid)
	fmt.Printf("%s*%s\t%sTraceId:%s %s\n", Red, Reset, Gray, Reset, resp.TraceId)
	fmt.Printf("%s*%s\t%sVersion:%s %s\n", Red, Reset, Gray, Reset, resp.Version)
	if resp.Logfile != "" {
		fmt.Printf("%s*%s\t%sLogfile:%s %s\n", Red, Reset, Cyan, Reset, resp.Logfile)
	}
	for key, snapshotFile := range resp.Snapshots {
		fmt.Printf("%s*%s\t%s%s:%s %s\n", Red, Reset, Cyan, key, Reset, snapshotFile)
	}
	fmt.Printf("%s%s***************************************************************************************************%s\n", Bold, Red, Reset)
	fmt.Printf("\n%s%s****************************************** Resolution *********************************************%s\n", Bold, Yellow, Reset)

	// Print custom instructions first if provided
	if len(instructions) > 0 && instructions[0] != "" {
		for _, line := range strings.Split(instructions[0], "\n") {
			if line == "" {
				fmt.Printf("%s*%s\n", Yellow, Reset)
			} else {
				fmt.Printf("%s*%s\t%s\n", Yellow, Reset, Bold+White+line+Reset)
			}
		}
		if len(resp.Resolution) > 0 {
			fmt.Printf("%s*%s\n", Yellow, Reset)
		}
	}

	// Print default resolution steps
	for _, r := range resp.Resolution {
		fmt.Printf("%s*%s\t%s\n", Yellow, Reset, White+r+Reset)
	}

	fmt.Printf("%s%s***************************************************************************************************%s\n", Bold, Yellow, Reset)
}

// CheckErr prints diagnosis and exits with the code mapped from err.
// Optional instructions can be provided to give additional context to the user
func CheckErr(ctx context.Context, err error, instructions ...string) {
	Explain(ctx, err, instructions...)
	os.Exit(erx.ExitCode(err).Int())
}

// GetInstructionsFromReport recursively searches for instructions in report metadata.
// Returns the first non-empty instructions found in the report tree, or an empty string if none exist.
func GetInstructionsFromReport(report *automa.Report) string {
	if report == nil {
		return ""
	}

	if instructions, ok := report.Metadata["instructions"]; ok {
		return instructions
	}

	for _, stepReport := range report.StepReports {
		if instructions := GetInstructionsFromReport(stepReport); instructions != "" {
			return instructions
		}
	}

	return ""
}

// FirstFailedStep returns the id of the first failed step in the report
// tree, or an empty string when every step succeeded.
func FirstFailedStep(report *automa.Report) string {
	if report == nil {
		return ""
	}

	for _, stepReport := range report.StepReports {
		if stepReport.Status == automa.StatusFailed {
			return stepReport.Id
		}
		if id := FirstFailedStep(stepReport); id != "" {
			return id
		}
	}

	return ""
}
