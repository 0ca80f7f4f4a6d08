// SPDX-License-Identifier: Apache-2.0

package runlog

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// successField marks an info level event as a success line. The marker is
// promoted into the severity tag during rendering and never printed itself.
const successField = "success"

// levelSuccess is the synthetic level value success lines render under.
const levelSuccess = "success"

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// boundWriter forwards events whose level falls inside an inclusive range.
// zerolog fans each event out to every writer of a MultiLevelWriter; the
// bounds implement the per stream routing of the run log.
type boundWriter struct {
	w        io.Writer
	min, max zerolog.Level
}

func (b boundWriter) Write(p []byte) (int, error) {
	return b.w.Write(p)
}

func (b boundWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < b.min || level > b.max {
		return len(p), nil
	}
	return b.w.Write(p)
}

func newConsoleWriter(out io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:             out,
		NoColor:         noColor,
		PartsOrder:      []string{zerolog.LevelFieldName, zerolog.TimestampFieldName, zerolog.MessageFieldName},
		FieldsExclude:   []string{successField},
		FormatPrepare:   promoteSuccess,
		FormatLevel:     formatTag(noColor),
		FormatTimestamp: formatClock,
	}
}

func promoteSuccess(evt map[string]interface{}) error {
	if ok, _ := evt[successField].(bool); ok {
		evt[zerolog.LevelFieldName] = levelSuccess
	}
	return nil
}

func formatTag(noColor bool) zerolog.Formatter {
	return func(i interface{}) string {
		level, _ := i.(string)

		var tag, color string
		switch level {
		case zerolog.LevelTraceValue, zerolog.LevelDebugValue:
			tag, color = TagDebug, colorGray
		case zerolog.LevelInfoValue:
			tag, color = TagInfo, colorCyan
		case levelSuccess:
			tag, color = TagSuccess, colorGreen
		case zerolog.LevelWarnValue:
			tag, color = TagWarn, colorYellow
		default:
			tag, color = TagError, colorRed
		}

		if noColor {
			return "[" + tag + "]"
		}
		return color + "[" + tag + "]" + colorReset
	}
}

func formatClock(i interface{}) string {
	ts, ok := i.(string)
	if !ok {
		return time.Now().Format(TimeLayout)
	}

	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}

	return t.Local().Format(TimeLayout)
}
