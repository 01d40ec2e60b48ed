package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{EnvRoutes, EnvMaxRedirects, EnvLogLevel, EnvLogFormat, EnvColor, EnvNoColor} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	assert.Equal(t, Default(), FromEnv())
	assert.NoError(t, Default().Validate())
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvRoutes, " routes.yaml ")
	t.Setenv(EnvMaxRedirects, "3")
	t.Setenv("sectomie_log_level", "DEBUG")
	t.Setenv(EnvLogFormat, "JSON")
	t.Setenv(EnvColor, "off")

	conf := FromEnv()
	assert.Equal(t, "routes.yaml", conf.RoutesFile)
	assert.Equal(t, 3, conf.MaxRedirects)
	assert.Equal(t, slog.LevelDebug, conf.LogLevel)
	assert.Equal(t, FormatJSON, conf.LogFormat)
	assert.True(t, conf.NoColor)
}

func TestFromEnv_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvMaxRedirects, "lots")
	t.Setenv(EnvLogLevel, "loud")
	t.Setenv(EnvLogFormat, "xml")
	t.Setenv(EnvColor, "maybe")
	assert.Equal(t, Default(), FromEnv(), "Invalid values should fall back to defaults")
}

func TestFromEnv_MaxRedirectsBelowOne(t *testing.T) {
	for _, val := range []string{"0", "-1"} {
		clearEnv(t)
		t.Setenv(EnvMaxRedirects, val)
		conf := FromEnv()
		assert.Equal(t, Default().MaxRedirects, conf.MaxRedirects)
		assert.NoError(t, conf.Validate())
	}
}

func TestFromEnv_NoColor(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvNoColor, "1")
	assert.True(t, FromEnv().NoColor)
}

func TestConfig_Validate(t *testing.T) {
	conf := Default()
	conf.MaxRedirects = 0
	conf.LogFormat = "xml"
	err := conf.Validate()
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorContains(t, err, "max redirects")
	assert.ErrorContains(t, err, "unknown log format")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]struct {
		expected slog.Level
		invalid  bool
	}{
		"debug": {expected: slog.LevelDebug},
		"Warn":  {expected: slog.LevelWarn},
		"ERROR": {expected: slog.LevelError},
		"":      {invalid: true},
		"loud":  {invalid: true},
	}
	for input, tc := range tests {
		t.Run(input, func(t *testing.T) {
			level, err := ParseLevel(input)
			if tc.invalid {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, level)
		})
	}
}
