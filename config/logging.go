package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// LogWriter receives application, request and SQL logs. InitLogging replaces it.
var LogWriter io.Writer = os.Stdout

// InitLogging sends the standard logger to stdout and, when cfg.LogFile is set,
// appends to that file as well. Outside production each line carries its
// source location. The returned closer is nil when no file was opened.
func InitLogging(cfg *Config) (io.Closer, io.Writer) {
	flags := log.LstdFlags
	if !cfg.IsProduction() {
		flags |= log.Lshortfile
	}
	log.SetFlags(flags)

	var closer io.Closer
	LogWriter = os.Stdout
	if cfg.LogFile != "" {
		f, err := openAppend(cfg.LogFile)
		if err != nil {
			log.Printf("Warning: logging to stdout only: %v", err)
		} else {
			LogWriter = io.MultiWriter(os.Stdout, f)
			closer = f
		}
	}

	log.SetOutput(LogWriter)
	return closer, LogWriter
}

func openAppend(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return f, nil
}
