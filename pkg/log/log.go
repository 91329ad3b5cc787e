// Package log builds the server logger from configuration.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/kanban/pkg/config"
	"github.com/charmbracelet/log"
)

// NewLogger returns a logger configured from cfg. When cfg.Log.Path is set
// the returned file receives the output and must be closed by the caller.
func NewLogger(cfg *config.Config) (*log.Logger, *os.File, error) {
	if cfg == nil {
		return nil, nil, config.ErrNilConfig
	}

	var (
		out io.Writer = os.Stderr
		f   *os.File
	)
	if cfg.Log.Path != "" {
		var err error
		f, err = os.OpenFile(cfg.Log.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
	}

	timeFormat := cfg.Log.TimeFormat
	if timeFormat == "" {
		timeFormat = time.DateTime
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      timeFormat,
		Formatter:       Formatter(cfg.Log.Format),
		Level:           log.InfoLevel,
	})

	switch {
	case config.IsVerbose():
		logger.SetReportCaller(true)
		fallthrough
	case config.IsDebug():
		logger.SetLevel(log.DebugLevel)
	}

	return logger, f, nil
}

// Formatter maps a configured format name to a log formatter. Unknown names
// fall back to text.
func Formatter(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
