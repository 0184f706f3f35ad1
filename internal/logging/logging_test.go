package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "SILENT", LevelSilent.String())
}

func TestLevelGating(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelWarn, &buf)

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestFieldsAreRendered(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelInfo, &buf)

	log.Info("scanned", F("module", "instructions"), F("types", 12))

	out := buf.String()
	assert.Contains(t, out, "module=instructions")
	assert.Contains(t, out, "types=12")
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelInfo, &buf).WithFields(F("project", "amm"))

	log.Info("first")
	log.Info("second", F("extra", true))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, "project=amm")
	}
	assert.Contains(t, lines[1], "extra=true")
}

func TestSilentLoggerWritesNothing(t *testing.T) {
	log := NewSilent()

	log.Error("should not appear anywhere")
}
