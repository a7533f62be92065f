package cli

import (
	"io"

	"github.com/charmbracelet/log"
)

// logTimeFormat is the timestamp layout for progress lines.
const logTimeFormat = "15:04:05"

// newLogger returns the progress logger written to w.
// verbose lowers the level to debug (chunk sizes, request details).
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      logTimeFormat,
		Level:           level,
	})
}
