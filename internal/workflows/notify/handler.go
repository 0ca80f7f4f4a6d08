// SPDX-License-Identifier: Apache-2.0

// Package notify routes step lifecycle events to the operator. The default
// handler renders run log lines; callers may override it to forward events
// to a channel, a webhook or a test capture.
package notify

import (
	"context"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"

	"github.com/probelab/scanprep/pkg/runlog"
)

// Default notification handler that renders run log lines
// Caller may override using SetDefault
var handler = &Handler{
	StepStart: func(ctx context.Context, stp automa.Step, msg string, args ...interface{}) {
		runlog.As().Info(msg, args...)
		logx.As().Debug().
			Str("step_id", stp.Id()).
			Msgf(msg, args...)
	},
	StepCompletion: func(ctx context.Context, stp automa.Step, report *automa.Report, msg string, args ...interface{}) {
		if report.IsSuccess() {
			runlog.As().Success(msg, args...)
		}
		logx.As().Debug().
			Str("step_id", stp.Id()).
			Str("status", report.Status.String()).
			Msgf(msg, args...)
	},
	StepFailure: func(ctx context.Context, stp automa.Step, report *automa.Report, msg string, args ...interface{}) {
		runlog.As().Error(msg, args...)

		// find the root cause by going through nested step reports
		firstErrReport := report
		for _, stepReport := range report.StepReports {
			if stepReport.HasError() {
				firstErrReport = stepReport
				break
			}
		}

		l := logx.As().Error().Err(report.Error).
			Str("step_id", stp.Id()).
			Str("status", report.Status.String())
		if firstErrReport.Id != report.Id && firstErrReport.Error != nil {
			l.
				Str("first_error", firstErrReport.Error.Error()).
				Str("first_error_step_id", firstErrReport.Id)
		}

		l.Msgf(msg, args...)
	},
}

// Handler defines callbacks for step events
// Caller may pass a custom handler to pass messages to a channel or a different logging mechanism or webhook (e.g. Slack).
type Handler struct {
	StepStart      func(ctx context.Context, stp automa.Step, msg string, args ...interface{})
	StepCompletion func(ctx context.Context, stp automa.Step, report *automa.Report, msg string, args ...interface{})
	StepFailure    func(ctx context.Context, stp automa.Step, report *automa.Report, msg string, args ...interface{})
}

// SetDefault sets the default callback handler for step events
// It only updates non-nil handlers to preserve existing defaults
func SetDefault(h *Handler) {
	if h.StepStart != nil {
		handler.StepStart = h.StepStart
	}

	if h.StepCompletion != nil {
		handler.StepCompletion = h.StepCompletion
	}

	if h.StepFailure != nil {
		handler.StepFailure = h.StepFailure
	}
}

// UseSink routes every event to the given run log sink. Intended for tests
// that assert on the rendered lines.
func UseSink(s runlog.Sink) {
	SetDefault(&Handler{
		StepStart: func(ctx context.Context, stp automa.Step, msg string, args ...interface{}) {
			s.Info(msg, args...)
		},
		StepCompletion: func(ctx context.Context, stp automa.Step, report *automa.Report, msg string, args ...interface{}) {
			if report.IsSuccess() {
				s.Success(msg, args...)
			}
		},
		StepFailure: func(ctx context.Context, stp automa.Step, report *automa.Report, msg string, args ...interface{}) {
			s.Error(msg, args...)
		},
	})
}

// As returns the current notification handler
func As() *Handler {
	return handler
}
