package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetPaths tests the GetPaths function with various scenarios
func TestGetPaths(t *testing.T) {
	t.Run("basic path resolution", func(t *testing.T) {
		paths, err := GetPaths()
		require.NoError(t, err)
		require.NotNil(t, paths)

		// Verify all paths are absolute
		assert.True(t, filepath.IsAbs(paths.ExecutableDir), "ExecutableDir should be absolute")
		assert.True(t, filepath.IsAbs(paths.DataDir), "DataDir should be absolute")
		assert.True(t, filepath.IsAbs(paths.CleanedDir), "CleanedDir should be absolute")
		assert.True(t, filepath.IsAbs(paths.LogsDir), "LogsDir should be absolute")

		// Verify paths are correctly related to executable dir
		assert.Equal(t, filepath.Join(paths.ExecutableDir, "data"), paths.DataDir)
		assert.Equal(t, filepath.Join(paths.ExecutableDir, "cleaned"), paths.CleanedDir)
		assert.Equal(t, filepath.Join(paths.ExecutableDir, "logs"), paths.LogsDir)
	})

	t.Run("consistent calls return same paths", func(t *testing.T) {
		paths1, err1 := GetPaths()
		require.NoError(t, err1)

		paths2, err2 := GetPaths()
		require.NoError(t, err2)

		assert.Equal(t, paths1.ExecutableDir, paths2.ExecutableDir)
		assert.Equal(t, paths1.DataDir, paths2.DataDir)
		assert.Equal(t, paths1.DatasetJSON, paths2.DatasetJSON)
	})

	t.Run("well-known artifact files", func(t *testing.T) {
		paths, err := GetPaths()
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(paths.CleanedDir, DatasetFileName), paths.DatasetJSON)
		assert.Equal(t, DatasetFileName, filepath.Base(paths.DatasetJSON))
	})
}

// TestEnsureDirectories tests directory creation functionality
func TestEnsureDirectories(t *testing.T) {
	tempDir := t.TempDir()

	paths := &Paths{
		ExecutableDir: tempDir,
		DataDir:       filepath.Join(tempDir, "data"),
		CleanedDir:    filepath.Join(tempDir, "cleaned"),
		LogsDir:       filepath.Join(tempDir, "logs"),
		DatasetJSON:   filepath.Join(tempDir, "cleaned", DatasetFileName),
	}

	t.Run("creates all directories", func(t *testing.T) {
		err := paths.EnsureDirectories()
		require.NoError(t, err)

		assert.DirExists(t, paths.DataDir)
		assert.DirExists(t, paths.CleanedDir)
		assert.DirExists(t, paths.LogsDir)
	})

	t.Run("idempotent - can be called multiple times", func(t *testing.T) {
		err1 := paths.EnsureDirectories()
		require.NoError(t, err1)

		err2 := paths.EnsureDirectories()
		require.NoError(t, err2)

		assert.DirExists(t, paths.DataDir)
	})
}

func TestPathHelpers(t *testing.T) {
	paths := &Paths{
		ExecutableDir: "/app",
		DataDir:       "/app/data",
		CleanedDir:    "/app/cleaned",
		LogsDir:       "/app/logs",
		DatasetJSON:   "/app/cleaned/" + DatasetFileName,
	}

	t.Run("workbook path", func(t *testing.T) {
		got := paths.GetWorkbookPath("2024-01.xlsx")
		assert.Equal(t, filepath.Join("/app/data", "2024-01.xlsx"), got)
	})

	t.Run("log path", func(t *testing.T) {
		got := paths.GetLogPath("extractor.log")
		assert.Equal(t, filepath.Join("/app/logs", "extractor.log"), got)
	})

	t.Run("diagnostics path carries the dated name", func(t *testing.T) {
		date := time.Date(2026, time.August, 26, 10, 0, 0, 0, time.UTC)
		got := paths.GetDiagnosticsPath(date)
		assert.Equal(t, filepath.Join("/app/logs", "26August2026-log.txt"), got)
	})

	t.Run("diagnostics path zero-pads the day", func(t *testing.T) {
		date := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
		got := paths.GetDiagnosticsPath(date)
		assert.Equal(t, filepath.Join("/app/logs", "05March2026-log.txt"), got)
	})

	t.Run("dataset path", func(t *testing.T) {
		assert.Equal(t, "/app/cleaned/"+DatasetFileName, paths.GetDatasetPath())
	})

	t.Run("relative path", func(t *testing.T) {
		assert.Equal(t, filepath.Join("/app", "extra"), paths.GetRelativePath("extra"))
	})
}

func TestFileExists(t *testing.T) {
	tempDir := t.TempDir()

	assert.False(t, FileExists(filepath.Join(tempDir, "missing.txt")))

	existing := filepath.Join(tempDir, "present.txt")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0644))
	assert.True(t, FileExists(existing))
}
