// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Setup points the standard logrus logger at w with the given level.
// verbose forces debug output regardless of level.
func Setup(w io.Writer, level string, verbose bool) error {
	lvl := logrus.WarnLevel
	if level != "" {
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("failed to parse log level: %w", err)
		}
		lvl = parsed
	}
	if verbose {
		lvl = logrus.DebugLevel
	}
	logrus.SetOutput(w)
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		FullTimestamp:    true,
		QuoteEmptyFields: true,
	})
	return nil
}

// ToFile redirects the standard logger to the file at path, appending to it.
// The returned func closes the file.
func ToFile(path string) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logrus.SetOutput(f)
	return f.Close, nil
}
