package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func TestSetupLogger(t *testing.T) {
	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)
	t.Setenv(EnvLogFile, "")

	SetupLogger(2)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	GetLogger("assembler").Warn().Str("app", "Demo.app").Msg("Module file name collision")

	content, err := os.ReadFile(filepath.Join(stateHome, "macappbundler", "macappbundler.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"component":"assembler"`)
	assert.Contains(t, string(content), "Module file name collision")
}

func TestSetupLogger_FileDisabled(t *testing.T) {
	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)
	t.Setenv(EnvLogFile, "-")

	SetupLogger(0)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	_, err := os.Stat(filepath.Join(stateHome, "macappbundler"))
	assert.True(t, os.IsNotExist(err))
}

func TestLogFilePath(t *testing.T) {
	t.Run("explicit file", func(t *testing.T) {
		t.Setenv(EnvLogFile, "/tmp/bundle.log")
		t.Setenv("XDG_STATE_HOME", "/custom/state")
		assert.Equal(t, "/tmp/bundle.log", LogFilePath())
	})

	t.Run("disabled", func(t *testing.T) {
		t.Setenv(EnvLogFile, "-")
		assert.Empty(t, LogFilePath())
	})

	t.Run("with XDG_STATE_HOME", func(t *testing.T) {
		t.Setenv(EnvLogFile, "")
		t.Setenv("XDG_STATE_HOME", "/custom/state")
		assert.Equal(t, filepath.Join("/custom/state", "macappbundler", "macappbundler.log"), LogFilePath())
	})

	t.Run("without XDG_STATE_HOME", func(t *testing.T) {
		t.Setenv(EnvLogFile, "")
		t.Setenv("XDG_STATE_HOME", "")
		got := LogFilePath()
		assert.True(t, strings.HasSuffix(filepath.ToSlash(got), "macappbundler/macappbundler.log"), got)
	})
}
