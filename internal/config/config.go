// Package config reads application configuration from the environment.
// Keys are compared case-insensitively, and blank or invalid values fall back to defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/saylorsolutions/sectomie/route"
)

const (
	EnvRoutes       = "SECTOMIE_ROUTES"
	EnvMaxRedirects = "SECTOMIE_MAX_REDIRECTS"
	EnvLogLevel     = "SECTOMIE_LOG_LEVEL"
	EnvLogFormat    = "SECTOMIE_LOG_FORMAT"
	EnvColor        = "SECTOMIE_COLOR"
	EnvNoColor      = "NO_COLOR"
)

const (
	FormatAuto = "auto"
	FormatText = "text"
	FormatJSON = "json"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

type Config struct {
	RoutesFile   string // RoutesFile is a YAML route table to use instead of the built-in table.
	MaxRedirects int
	LogLevel     slog.Level
	LogFormat    string
	NoColor      bool
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		MaxRedirects: route.DefaultMaxRedirects,
		LogLevel:     slog.LevelInfo,
		LogFormat:    FormatAuto,
	}
}

// FromEnv reads configuration from the environment, on top of [Default].
// An unrecognized log level or format, or max redirects below 1, keeps the default.
func FromEnv() Config {
	conf := Default()
	conf.RoutesFile = envString(EnvRoutes, conf.RoutesFile)
	if n := envInt(EnvMaxRedirects, conf.MaxRedirects); n >= 1 {
		conf.MaxRedirects = n
	}
	if level, err := ParseLevel(envString(EnvLogLevel, "")); err == nil {
		conf.LogLevel = level
	}
	if format, err := ParseFormat(envString(EnvLogFormat, "")); err == nil {
		conf.LogFormat = format
	}
	// NO_COLOR disables color when set to anything.
	_, noColor := lookup(EnvNoColor)
	conf.NoColor = noColor || !envBool(EnvColor, true)
	return conf
}

// Validate reports all problems with the configuration together.
func (c Config) Validate() error {
	var errs []error
	if c.MaxRedirects < 1 {
		errs = append(errs, fmt.Errorf("%w: max redirects must be >= 1, got %d", ErrInvalidConfig, c.MaxRedirects))
	}
	if _, err := ParseFormat(c.LogFormat); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseLevel interprets a log level name.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if len(strings.TrimSpace(s)) == 0 {
		return level, fmt.Errorf("%w: empty log level", ErrInvalidConfig)
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return level, nil
}

// ParseFormat interprets a log format name.
func ParseFormat(s string) (string, error) {
	switch format := strings.ToLower(strings.TrimSpace(s)); format {
	case FormatAuto, FormatText, FormatJSON:
		return format, nil
	default:
		return "", fmt.Errorf("%w: unknown log format '%s'", ErrInvalidConfig, s)
	}
}
