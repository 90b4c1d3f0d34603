package utils

import (
	"os"

	"github.com/pterm/pterm"
)

// NewLogger writes structured logs to stderr, at debug level when verbose.
func NewLogger(verbose bool) *pterm.Logger {
	level := pterm.LogLevelInfo
	if verbose {
		level = pterm.LogLevelDebug
	}

	return pterm.DefaultLogger.
		WithLevel(level).
		WithWriter(os.Stderr).
		WithTime(verbose)
}
