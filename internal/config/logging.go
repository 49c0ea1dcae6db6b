package config

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/eartrumpet-io/eartrumpet/internal/models"
)

// SetupLogging configures the standard logger for the tray process. When
// settings ask for it, output is also appended to logs/eartrumpet.log. The
// returned closer must be closed on exit.
func SetupLogging(settings *models.LogConfig) (io.Closer, error) {
	log.SetPrefix("[eartrumpet] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)

	if settings == nil || !settings.File {
		return io.NopCloser(nil), nil
	}

	if err := EnsureGlobalLogsDir(); err != nil {
		return nil, fmt.Errorf("failed to ensure logs dir: %w", err)
	}
	path, err := GlobalLogFile()
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))
	return f, nil
}
