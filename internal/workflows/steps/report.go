// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"gopkg.in/yaml.v3"

	"github.com/probelab/scanprep/internal/core"
)

// WriteWorkflowReport renders the workflow execution report as YAML. With an
// empty reportPath the report goes to stdout, otherwise it is written to the
// given file.
var WriteWorkflowReport = func(report *automa.Report, reportPath string) {
	b, err := yaml.Marshal(report)
	if err != nil {
		logx.As().Warn().Err(err).Msg("failed to marshal workflow report")
		return
	}

	if reportPath == "" {
		fmt.Printf("Workflow Execution Report:\n%s\n", b)
		return
	}

	if err := os.MkdirAll(filepath.Dir(reportPath), core.DefaultDirPerm); err != nil {
		logx.As().Warn().Err(err).Str("report_path", reportPath).Msg("failed to create report directory")
		return
	}

	if err := os.WriteFile(reportPath, b, core.DefaultFilePerm); err != nil {
		logx.As().Warn().Err(err).Str("report_path", reportPath).Msg("failed to write workflow report")
		return
	}

	logx.As().Debug().Str("report_path", reportPath).Msg("workflow report saved")
}
