package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It discards output until Setup routes it
// to a file; a TUI owns the terminal, so nothing may write to stderr.
var Log = logrus.New()

func init() {
	Log.SetOutput(io.Discard)
}

// Setup directs logs to the given file. An empty path keeps logging off.
func Setup(path, level string) error {
	if path == "" {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	Log.SetOutput(f)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	Log.SetLevel(lvl)
	return nil
}
