package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	var testCases = []struct {
		input  string
		expect slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, ParseLevel(testCase.input), testCase.input)
	}
}

func TestNew(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(buf, "warn", FormatJSON)
	log.Info("skipped")
	log.Warn("fetch user failed", Command("fetchUser"), Error(errors.New("401")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	record := map[string]interface{}{}
	require.Nil(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "fetch user failed", record["msg"])
	assert.Equal(t, "fetchUser", record["command"])
	assert.Equal(t, "401", record["error"])

	text := &bytes.Buffer{}
	New(text, "debug", FormatText).Debug("hydrated", Error(nil))
	assert.Contains(t, text.String(), "msg=hydrated")
	assert.NotContains(t, text.String(), "error")
}
