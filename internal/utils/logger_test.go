package utils

import (
	"bytes"
	"io"
	"log"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T, level LogLevel) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer

	prevOut, prevFlags, prevLevel, prevStyle := log.Writer(), log.Flags(), CurrentLevel, Output
	log.SetOutput(&buf)
	log.SetFlags(0)
	CurrentLevel = level
	Output = termenv.NewOutput(io.Discard, termenv.WithProfile(termenv.Ascii))
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
		CurrentLevel = prevLevel
		Output = prevStyle
	})
	return &buf
}

func TestLogLevelFiltering(t *testing.T) {
	buf := captureLog(t, LevelWarn)

	Debug("hidden %d", 1)
	Info("hidden %d", 2)
	Warn("shown %d", 3)
	Error("shown %d", 4)

	assert.Equal(t, "[WARN] shown 3\n[ERROR] shown 4\n", buf.String())
}

func TestRaylibLogCallback(t *testing.T) {
	buf := captureLog(t, LevelWarn)
	RaylibLogCallback(raylibInfo, "TEXTURE: loaded")
	assert.Empty(t, buf.String())

	RaylibLogCallback(raylibWarning, "GL: 100% done")
	assert.Equal(t, "[WARN] [RAYLIB] GL: 100% done\n", buf.String())

	buf.Reset()
	CurrentLevel = LevelDebug
	RaylibLogCallback(raylibDebug, "trace")
	assert.Equal(t, "[DEBUG] [RAYLIB] trace\n", buf.String())
}

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"":        LevelInfo,
		" warn ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}
