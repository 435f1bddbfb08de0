package logger

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/propusage/internal/config"
)

// NewLogger creates a new hclog.Logger writing to stderr, configured from YAML and the provided name.
func NewLogger(cfg *config.Config, name string) hclog.Logger {
	return NewLoggerWithOutput(cfg, name, os.Stderr)
}

// NewLoggerWithOutput is NewLogger with an explicit destination.
func NewLoggerWithOutput(cfg *config.Config, name string, output io.Writer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:            name,
		DisableTime:     config.GetBoolValue(cfg, "Logger.DisableTime", true),
		JSONFormat:      config.GetBoolValue(cfg, "Logger.JSONFormat", false),
		IncludeLocation: config.GetBoolValue(cfg, "Logger.IncludeLocation", false),
		Output:          output,
		Level:           determineLogLevel(cfg, output),
	})
}

// determineLogLevel returns a log level determined first by an environment variable, and if not set, by the provided configuration.
// If neither configuration nor environment variable specifies a log level, it defaults to INFO.
func determineLogLevel(cfg *config.Config, output io.Writer) hclog.Level {
	if logLevelEnv := os.Getenv(config.EnvLogLevel); logLevelEnv != "" {
		return parseLogLevel(strings.ToUpper(logLevelEnv), output)
	}
	if cfg == nil || cfg.Logger.Level == "" {
		return hclog.Info
	}
	return parseLogLevel(strings.ToUpper(cfg.Logger.Level), output)
}

// parseLogLevel converts a string level to hclog.Level.
func parseLogLevel(levelStr string, output io.Writer) hclog.Level {
	switch levelStr {
	case "TRACE":
		return hclog.Trace
	case "DEBUG":
		return hclog.Debug
	case "INFO":
		return hclog.Info
	case "WARN":
		return hclog.Warn
	case "ERROR":
		return hclog.Error
	default:
		hclog.New(&hclog.LoggerOptions{
			Level:       hclog.Warn,
			DisableTime: true,
			Output:      output,
		}).Warn("Unrecognized log level, defaulting to INFO", "providedLevel", levelStr)
		return hclog.Info
	}
}
