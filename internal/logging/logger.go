// Package logging provides the leveled, optionally colored logger used by
// every other package. The printf-style facade keeps call sites short; the
// backend is go-hclog, which handles level filtering, timestamps, color,
// and TTY detection.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/backmassage/cloudmux/internal/config"
)

// Logger wraps an hclog.Logger with an optional append-to-file sink.
type Logger struct {
	hc       hclog.Logger
	file     *os.File
	colorsOn bool
}

// NewLogger builds the logger from cfg: color mode, verbosity, and optional
// log file. Call Close() when done if LogFile was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	l := &Logger{}

	color := hclog.AutoColor
	switch cfg.ColorMode {
	case config.ColorAlways:
		color = hclog.ForceColor
		l.colorsOn = true
	case config.ColorNever:
		color = hclog.ColorOff
	case config.ColorAuto:
		l.colorsOn = isTerminal(os.Stdout) && os.Getenv("NO_COLOR") == ""
	}

	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		dir := filepath.Dir(cfg.LogFile)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		out = io.MultiWriter(os.Stdout, f)
		// Escape codes would land in the file verbatim, so a file sink
		// disables color unless it was forced.
		if color == hclog.AutoColor {
			color = hclog.ColorOff
			l.colorsOn = false
		}
	}

	level := hclog.Info
	if cfg.Verbose {
		level = hclog.Debug
	}

	l.hc = hclog.New(&hclog.LoggerOptions{
		Name:   "cloudmux",
		Level:  level,
		Output: out,
		Color:  color,
	})
	return l, nil
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// ColorsEnabled reports whether stdout gets ANSI color (used by the banner).
func (l *Logger) ColorsEnabled() bool {
	return l.colorsOn
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.hc.Info(fmt.Sprintf(format, args...))
}

// Success logs at INFO level. Separate method so call sites read as outcomes.
func (l *Logger) Success(format string, args ...interface{}) {
	l.hc.Info(fmt.Sprintf(format, args...))
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.hc.Warn(fmt.Sprintf(format, args...))
}

// Error logs at ERROR level.
func (l *Logger) Error(format string, args ...interface{}) {
	l.hc.Error(fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level when verbose; no-op otherwise.
func (l *Logger) Debug(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	l.hc.Debug(fmt.Sprintf(format, args...))
}
