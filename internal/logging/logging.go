// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger, which every component logs through,
// and returns it. An unknown level falls back to info.
func Setup(level, format string) *logrus.Logger {
	logger := logrus.StandardLogger()
	configure(logger, os.Stdout, level, format)
	return logger
}

// NewWithOutput builds an independent logger writing to out
func NewWithOutput(out io.Writer, level, format string) *logrus.Logger {
	logger := logrus.New()
	configure(logger, out, level, format)
	return logger
}

// Discard returns a logger that drops everything; used by tests
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func configure(logger *logrus.Logger, out io.Writer, level, format string) {
	logger.SetOutput(out)

	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
