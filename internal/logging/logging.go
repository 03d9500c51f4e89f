// Package logging configures the shared diagnostic logger.
//
// taskdeck is a terminal UI, so diagnostics go to a file under the config
// dir instead of stdout/stderr. User-facing errors stay generic; the detail
// lands here.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	once   sync.Once
	logger = logrus.New()
)

// L returns the process-wide logger, initializing it on first use.
func L() *logrus.Logger {
	once.Do(setup)
	return logger
}

func setup() {
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(levelFromEnv())

	// Default to discard: a missing or unwritable log file must never break
	// the client.
	logger.SetOutput(io.Discard)
	dir := strings.TrimSpace(os.Getenv("TASKDECK_CONFIG_DIR"))
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		dir = filepath.Join(home, ".taskdeck")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "taskdeck.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	logger.SetOutput(f)
}

func levelFromEnv() logrus.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TASKDECK_LOG"))) {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
