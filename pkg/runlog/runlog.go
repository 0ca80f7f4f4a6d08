// SPDX-License-Identifier: Apache-2.0

// Package runlog renders the operator facing run log. Every line carries a
// severity tag and a wall clock timestamp:
//
//	[INFO] 2025-06-07 10:21:33 Refreshing package index
//
// Info, success and warning lines go to stdout, error lines to stderr, and
// all of them are appended to the run log file so that earlier runs remain
// inspectable. Debug lines are diagnostic only: they go to stderr and never
// reach the file.
package runlog

import (
	"io"
	"os"
	"path/filepath"

	"github.com/joomcode/errorx"
	"github.com/rs/zerolog"
)

// Severity tags as they appear on each run log line.
const (
	TagDebug   = "DEBUG"
	TagInfo    = "INFO"
	TagSuccess = "SUCCESS"
	TagWarn    = "WARN"
	TagError   = "ERROR"
)

// TimeLayout is the wall clock layout used on every run log line.
const TimeLayout = "2006-01-02 15:04:05"

// Sink is the narrow logging capability provisioning code depends on. The
// console and file backed Logger satisfies it, as does the Capture double
// used in tests.
type Sink interface {
	Info(format string, args ...interface{})
	Success(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Config controls where run log lines are delivered.
type Config struct {
	// FilePath is the run log file. Lines are appended across runs; the file
	// is never rotated or truncated. Empty disables file logging.
	FilePath string
	// Debug additionally traces diagnostic lines to stderr.
	Debug bool
	// NoColor disables ANSI coloring of the severity tag on console output.
	NoColor bool
	// Stdout and Stderr default to the process streams. They exist as seams
	// for tests.
	Stdout io.Writer
	Stderr io.Writer
}

// Logger delivers run log lines to the console streams and the append only
// run log file.
type Logger struct {
	log  zerolog.Logger
	file *os.File
}

var _ Sink = (*Logger)(nil)

// The package default starts console only so that failures occurring before
// Initialize runs are still visible.
var defaultLogger, _ = NewLogger(Config{})

var nopLogger = &Logger{log: zerolog.Nop()}

// NewLogger builds a Logger from cfg. When the run log file cannot be opened
// the returned Logger still delivers to the console and the open error is
// returned alongside it, so callers can report the degraded state and carry
// on.
func NewLogger(cfg Config) (*Logger, error) {
	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	writers := []io.Writer{
		boundWriter{w: newConsoleWriter(stdout, cfg.NoColor), min: zerolog.InfoLevel, max: zerolog.WarnLevel},
		boundWriter{w: newConsoleWriter(stderr, cfg.NoColor), min: zerolog.ErrorLevel, max: zerolog.PanicLevel},
		boundWriter{w: newConsoleWriter(stderr, cfg.NoColor), min: zerolog.TraceLevel, max: zerolog.DebugLevel},
	}

	var file *os.File
	var fileErr error
	if cfg.FilePath != "" {
		file, fileErr = openLogFile(cfg.FilePath)
		if fileErr == nil {
			// The file never carries color codes or debug lines.
			writers = append(writers, boundWriter{w: newConsoleWriter(file, true), min: zerolog.InfoLevel, max: zerolog.PanicLevel})
		}
	}

	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}

	log := zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
	return &Logger{log: log, file: file}, fileErr
}

// Initialize replaces the package default logger.
func Initialize(cfg Config) error {
	l, err := NewLogger(cfg)
	defaultLogger = l
	return err
}

// As returns the package default logger.
func As() *Logger {
	return defaultLogger
}

// Nop returns a logger that discards every line.
func Nop() *Logger {
	return nopLogger
}

// Info reports a routine action on stdout and the run log file.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log.Info().Msgf(format, args...)
}

// Success reports a completed action on stdout and the run log file.
func (l *Logger) Success(format string, args ...interface{}) {
	l.log.Info().Bool(successField, true).Msgf(format, args...)
}

// Warn reports a recoverable anomaly on stdout and the run log file.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log.Warn().Msgf(format, args...)
}

// Error reports a failure on stderr and the run log file.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log.Error().Msgf(format, args...)
}

// Debug traces a diagnostic line to stderr. Debug lines are outside the run
// log contract and are dropped unless Config.Debug was set.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log.Debug().Msgf(format, args...)
}

// Close releases the run log file, if one was opened.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errorx.InitializationFailed.Wrap(err, "failed to create run log directory for %s", path)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errorx.InitializationFailed.Wrap(err, "failed to open run log file %s", path)
	}

	return f, nil
}
