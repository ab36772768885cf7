package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

var logger = log.New()

func init() {
	logger.Out = os.Stdout
	// LOG_TO_FILE=true writes to logs/<date><env>.log in the working directory.
	if os.Getenv("LOG_TO_FILE") == "true" {
		if f, err := openLogFile(os.Getenv("ENV")); err != nil {
			log.Warnf("Failed to open log file: %v, falling back to stdout", err)
		} else {
			logger.Out = f
		}
	}

	logger.Formatter = &log.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
	}
	logger.SetLevel(log.DebugLevel)
}

func openLogFile(env string) (*os.File, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	logsDir := filepath.Join(cwd, "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, err
	}
	filePath := filepath.Join(logsDir, fmt.Sprintf("%s%s.log", time.Now().Format("2006-01-02"), env))
	return os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
}

// Configure applies the level and format from configuration. Unknown values
// keep the current setting.
func Configure(level, format string) {
	if level != "" {
		if lvl, err := log.ParseLevel(level); err == nil {
			logger.SetLevel(lvl)
		} else {
			GetLogger().WithField("level", level).Warn("Unknown log level")
		}
	}
	switch strings.ToLower(format) {
	case "text":
		logger.Formatter = &log.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339Nano}
	case "json":
		logger.Formatter = &log.JSONFormatter{TimestampFormat: time.RFC3339Nano}
	}
}

// Logger returns the underlying logrus logger so tests can attach hooks.
func Logger() *log.Logger {
	return logger
}

func GetLogger() *log.Entry {
	function, file, line, _ := runtime.Caller(1)

	functionObject := runtime.FuncForPC(function)
	entry := logger.WithFields(log.Fields{
		"function": functionObject.Name(),
		"file":     file,
		"line":     line,
	})

	return entry
}
