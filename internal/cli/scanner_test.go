package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGoFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	content := "package " + filepath.Base(dir) + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestDirectoryScanner_ScanDirectories(t *testing.T) {
	t.Run("single directory", func(t *testing.T) {
		tempDir := t.TempDir()
		writeGoFile(t, filepath.Join(tempDir, "actions"), "actions.go")

		scanner := NewDirectoryScanner()
		dirs, err := scanner.ScanDirectories([]string{filepath.Join(tempDir, "actions")})
		require.NoError(t, err)
		require.Len(t, dirs, 1)
	})

	t.Run("recursive pattern", func(t *testing.T) {
		tempDir := t.TempDir()
		writeGoFile(t, filepath.Join(tempDir, "actions"), "actions.go")
		writeGoFile(t, filepath.Join(tempDir, "internal", "tasks"), "tasks.go")
		// No Go files here, must be skipped
		require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "docs"), 0755))

		scanner := NewDirectoryScanner()
		dirs, err := scanner.ScanDirectories([]string{tempDir + "/..."})
		require.NoError(t, err)
		assert.Len(t, dirs, 2)
	})

	t.Run("skips vendor, testdata and hidden directories", func(t *testing.T) {
		tempDir := t.TempDir()
		writeGoFile(t, filepath.Join(tempDir, "actions"), "actions.go")
		writeGoFile(t, filepath.Join(tempDir, "vendor", "dep"), "dep.go")
		writeGoFile(t, filepath.Join(tempDir, "testdata"), "fixture.go")
		writeGoFile(t, filepath.Join(tempDir, ".hidden"), "hidden.go")
		writeGoFile(t, filepath.Join(tempDir, "_build"), "gen.go")

		scanner := NewDirectoryScanner()
		dirs, err := scanner.ScanDirectories([]string{tempDir + "/..."})
		require.NoError(t, err)
		require.Len(t, dirs, 1)
		assert.Equal(t, "actions", filepath.Base(dirs[0]))
	})

	t.Run("test-only directories are not packages", func(t *testing.T) {
		tempDir := t.TempDir()
		writeGoFile(t, filepath.Join(tempDir, "actions"), "actions.go")
		writeGoFile(t, filepath.Join(tempDir, "fixtures"), "fixtures_test.go")

		scanner := NewDirectoryScanner()
		dirs, err := scanner.ScanDirectories([]string{tempDir + "/..."})
		require.NoError(t, err)
		require.Len(t, dirs, 1)
		assert.Equal(t, "actions", filepath.Base(dirs[0]))
	})

	t.Run("duplicates are collapsed", func(t *testing.T) {
		tempDir := t.TempDir()
		actionsDir := filepath.Join(tempDir, "actions")
		writeGoFile(t, actionsDir, "actions.go")

		scanner := NewDirectoryScanner()
		dirs, err := scanner.ScanDirectories([]string{actionsDir, actionsDir, tempDir + "/..."})
		require.NoError(t, err)
		assert.Len(t, dirs, 1)
	})

	t.Run("missing directory errors", func(t *testing.T) {
		scanner := NewDirectoryScanner()
		_, err := scanner.ScanDirectories([]string{filepath.Join(t.TempDir(), "missing") + "/..."})
		require.Error(t, err)
	})
}
