package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"gopkg.in/natefinch/lumberjack.v2"
)

// setupLog sends all logging to a rotating file in the user cache dir so
// nothing is written over the terminal UI. CABLESPEAK_LOG_FILE overrides
// the location.
func setupLog() (func() error, error) {
	logFile := os.Getenv("CABLESPEAK_LOG_FILE")
	if logFile == "" {
		dir, err := gap.NewScope(gap.User, "cablespeak").CacheDir()
		if err != nil {
			return nil, fmt.Errorf("could not find cache directory: %w", err)
		}
		logFile = filepath.Join(dir, "cablespeak.log")
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0o700); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}

	w := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    5, // MB
		MaxBackups: 3,
		MaxAge:     28,
	}
	log.SetOutput(w)
	log.SetReportTimestamp(true)
	log.SetPrefix("cablespeak")
	return w.Close, nil
}
