package app

import (
	"os"
	"strconv"

	"stickynotes/internal/logger"
	"stickynotes/internal/notes"
)

const (
	EnvConfigPath = "STICKYNOTES_CONFIG"
	EnvLogLevel   = "STICKYNOTES_LOG_LEVEL"
	EnvJSONLogs   = "STICKYNOTES_JSON_LOGS"
	EnvNoWatch    = "STICKYNOTES_NO_WATCH"
)

// Options configures an Application.
type Options struct {
	ConfigPath string
	LogLevel   logger.LogLevel
	JSONLogs   bool
	// Watch reloads palette and default size when the file is edited
	// by another program.
	Watch bool
}

func DefaultOptions() Options {
	return Options{
		ConfigPath: notes.DefaultFileName,
		LogLevel:   logger.InfoLevel,
		Watch:      true,
	}
}

// OptionsFromEnv starts from DefaultOptions and applies the STICKYNOTES_*
// environment variables.
func OptionsFromEnv() Options {
	opts := DefaultOptions()

	if path := os.Getenv(EnvConfigPath); path != "" {
		opts.ConfigPath = path
	}
	if level, ok := logger.ParseLevel(os.Getenv(EnvLogLevel)); ok {
		opts.LogLevel = level
	}
	if v, err := strconv.ParseBool(os.Getenv(EnvJSONLogs)); err == nil {
		opts.JSONLogs = v
	}
	if v, err := strconv.ParseBool(os.Getenv(EnvNoWatch)); err == nil && v {
		opts.Watch = false
	}

	return opts
}

// NewLogger builds the logger described by the options.
func (o Options) NewLogger() logger.Logger {
	if o.JSONLogs {
		return logger.NewJSONLogger(o.LogLevel)
	}
	return logger.NewConsoleLogger(o.LogLevel)
}
