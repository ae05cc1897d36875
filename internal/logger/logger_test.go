package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_DisabledDiscards(t *testing.T) {
	var out bytes.Buffer
	Init(Options{Enabled: false, Output: &out})
	Info("hidden")
	assert.Empty(t, out.String())
}

func TestInit_TextAndLevel(t *testing.T) {
	var out bytes.Buffer
	Init(Options{Enabled: true, Output: &out, Level: slog.LevelWarn})
	t.Cleanup(func() { Init(Options{}) })

	Info("below threshold")
	Warn("visible", "bank", 3)

	s := out.String()
	assert.NotContains(t, s, "below threshold")
	assert.Contains(t, s, "visible")
	assert.Contains(t, s, "bank=3")
}

func TestInit_JSON(t *testing.T) {
	var out bytes.Buffer
	Init(Options{Enabled: true, Output: &out, JSON: true, Level: slog.LevelDebug})
	t.Cleanup(func() { Init(Options{}) })

	Debug("detect", "banks", 16)
	assert.Contains(t, out.String(), `"banks":16`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
