package logger

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/o6b7/travelbond/internal/cli/config"
)

var logger *log.Logger

// Init opens the log file from config; verbose enables debug output.
// When the file cannot be opened it logs to stderr instead.
func Init(verbose bool) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	f := os.Stderr
	if path := config.GetString("log.file"); path != "" {
		if opened, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600); err == nil {
			f = opened
		}
	}

	logger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "travelbond",
	})
	logger.SetLevel(level)
}

// Debug logs a debug message
func Debug(msg string, args ...interface{}) {
	if logger != nil {
		logger.Debug(msg, args...)
	}
}

// Info logs an info message
func Info(msg string, args ...interface{}) {
	if logger != nil {
		logger.Info(msg, args...)
	}
}

// Warn logs a warning message
func Warn(msg string, args ...interface{}) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}

// Error logs an error message
func Error(msg string, args ...interface{}) {
	if logger != nil {
		logger.Error(msg, args...)
	}
}
