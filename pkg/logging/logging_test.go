package logging

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture swaps the global logger for one writing into a buffer
func capture(t *testing.T, level zerolog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	original := log.Logger
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(originalLevel)
	})
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(level)
	return &buf
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{-1, zerolog.WarnLevel},
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFor(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestSetupLogger_WritesStateLogFile(t *testing.T) {
	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)

	var console bytes.Buffer
	savedConsole, savedLogger := Console, log.Logger
	t.Cleanup(func() {
		Console = savedConsole
		log.Logger = savedLogger
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	})
	Console = &console

	SetupLogger(1)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	logger := GetLogger("test")
	logger.Info().Msg("archive written")

	path := filepath.Join(stateHome, "customs", "customs.log")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"test"`)
	assert.Contains(t, console.String(), "archive written")

	// a second setup reopens the file instead of leaking the first handle
	SetupLogger(0)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestFilePath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/custom/state")
	assert.Equal(t, filepath.Join("/custom/state", "customs", "customs.log"), FilePath())
}

func TestForBuild(t *testing.T) {
	buf := capture(t, zerolog.InfoLevel)

	logger := ForBuild("build", "1234")
	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"build"`)
	assert.Contains(t, buf.String(), `"buildID":"1234"`)
}

func TestTrack(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.WarnLevel) })
	logger := zerolog.New(&buf)

	Track(logger, "walk")(nil)
	assert.Contains(t, buf.String(), "Operation started")
	assert.Contains(t, buf.String(), "Operation finished")
	assert.Contains(t, buf.String(), `"operation":"walk"`)

	buf.Reset()
	Track(logger, "write")(stderrors.New("disk full"))
	assert.Contains(t, buf.String(), `"level":"debug"`)
	assert.Contains(t, buf.String(), "disk full")

	// failures stay off the default console level
	buf.Reset()
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	Track(logger, "write")(stderrors.New("disk full"))
	assert.Empty(t, buf.String())
}
