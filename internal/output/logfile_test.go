package output_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"openpr.dev/openpr/internal/output"
)

func TestGetLogFilePath(t *testing.T) {
	t.Run("honors the OPENPR_LOG_FILE override", func(t *testing.T) {
		custom := filepath.Join(t.TempDir(), "custom.log")
		t.Setenv("OPENPR_LOG_FILE", custom)
		require.Equal(t, custom, output.GetLogFilePath())
	})

	t.Run("defaults under the home directory", func(t *testing.T) {
		t.Setenv("OPENPR_LOG_FILE", "")
		path := output.GetLogFilePath()
		require.Contains(t, path, ".openpr")
		require.Equal(t, "openpr.log", filepath.Base(path))
	})
}

func TestSplogFileLogging(t *testing.T) {
	t.Run("creates the log directory", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "logs", "openpr.log")
		splog, err := output.NewSplogWithConfig(logPath)
		require.NoError(t, err)
		splog.SetQuiet(true)
		splog.Debug("wrote %d entries", 1)
		require.NoError(t, splog.Close())
	})
}
