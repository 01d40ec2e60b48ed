package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/saylorsolutions/sectomie/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Formats(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelInfo, config.FormatJSON).Info("Resolved route", "route", "Home")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Home", line["route"])

	buf.Reset()
	New(&buf, slog.LevelInfo, config.FormatText).Info("Resolved route", "route", "Home")
	assert.Contains(t, buf.String(), "route=Home")

	buf.Reset()
	New(&buf, slog.LevelInfo, config.FormatAuto).Info("Resolved route")
	assert.True(t, json.Valid(buf.Bytes()), "A buffer is not a terminal, so auto should choose JSON")
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelWarn, config.FormatText)
	log.Info("hidden")
	log.Debug("hidden")
	assert.Empty(t, buf.String())
	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestDedupeHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewDedupeHandler(slog.NewTextHandler(&buf, nil)))
	log = log.With("event", "a")
	log = log.With("event", "b")
	log.Info("Test", "event", "c")
	assert.Equal(t, 1, strings.Count(buf.String(), "event="))
	assert.Contains(t, buf.String(), "event=c")
}

func TestDedupeHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewDedupeHandler(slog.NewTextHandler(&buf, nil)))
	log = log.With("route", 1).WithGroup("resolver").With("route", 2).With("route", 3)
	log.Info("Test")
	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, " route="))
	assert.Equal(t, 1, strings.Count(out, "resolver.route="))
	assert.Contains(t, out, "resolver.route=3")
}

func TestDedupeHandler_NilImpl(t *testing.T) {
	assert.Panics(t, func() {
		NewDedupeHandler(nil)
	})
}
