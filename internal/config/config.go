// Package config loads runtime settings from the environment and sets up logging.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/raphaelgruber/crisis-assistant/internal/classifier"
)

// DefaultThreshold is the classifier's fallback threshold.
const DefaultThreshold = classifier.DefaultThreshold

// Config holds all configuration values.
type Config struct {
	// Catalog
	CatalogFile string // empty means the embedded catalog
	Threshold   float64

	// Logging
	LogFile  string
	LogLevel slog.Level

	// Output
	NoColor bool
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		CatalogFile: getEnv("CRISIS_CATALOG_FILE", ""),
		Threshold:   parseThreshold(getEnv("CRISIS_THRESHOLD", "")),

		LogFile:  getEnv("CRISIS_LOG_FILE", "/tmp/crisis-assistant.log"),
		LogLevel: parseLogLevel(getEnv("CRISIS_LOG_LEVEL", "WARN")),

		NoColor: getEnv("CRISIS_NO_COLOR", "false") == "true" || os.Getenv("NO_COLOR") != "",
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// parseThreshold accepts a number in [0,1]; anything else yields the default.
func parseThreshold(s string) float64 {
	if s == "" {
		return DefaultThreshold
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !ValidThreshold(v) {
		slog.Warn("ignoring invalid threshold", "value", s, "default", DefaultThreshold)
		return DefaultThreshold
	}
	return v
}

// ValidThreshold reports whether v can be used as a confidence threshold.
func ValidThreshold(v float64) bool {
	return v >= 0 && v <= 1
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
