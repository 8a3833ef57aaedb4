package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleaner_Clean(t *testing.T) {
	t.Run("removes generated artifacts", func(t *testing.T) {
		tempDir := t.TempDir()
		buildDir := filepath.Join(tempDir, "build")

		sourceDir := filepath.Join(buildDir, "generated-sources", "plugin", "internal", "actions")
		require.NoError(t, os.MkdirAll(sourceDir, 0755))
		require.NoError(t, os.WriteFile(
			filepath.Join(sourceDir, "plugin_registration.gen.go"), []byte("package actions\n"), 0644))

		importsDir := filepath.Join(buildDir, "META-INF", "plugen")
		require.NoError(t, os.MkdirAll(importsDir, 0755))
		require.NoError(t, os.WriteFile(
			filepath.Join(importsDir, "autoconfiguration.imports"), []byte("example.com/x.Y\n"), 0644))

		cleaner := NewCleaner(newTestDiagnostics())
		require.NoError(t, cleaner.Clean(buildDir, buildDir))

		_, err := os.Stat(filepath.Join(buildDir, "generated-sources", "plugin"))
		assert.True(t, os.IsNotExist(err))
		_, err = os.Stat(importsDir)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("missing artifacts are not an error", func(t *testing.T) {
		tempDir := t.TempDir()
		cleaner := NewCleaner(newTestDiagnostics())
		assert.NoError(t, cleaner.Clean(filepath.Join(tempDir, "build"), filepath.Join(tempDir, "build")))
	})

	t.Run("leaves unrelated files alone", func(t *testing.T) {
		tempDir := t.TempDir()
		buildDir := filepath.Join(tempDir, "build")
		require.NoError(t, os.MkdirAll(buildDir, 0755))
		unrelated := filepath.Join(buildDir, "report.txt")
		require.NoError(t, os.WriteFile(unrelated, []byte("keep me"), 0644))

		cleaner := NewCleaner(newTestDiagnostics())
		require.NoError(t, cleaner.Clean(buildDir, buildDir))

		_, err := os.Stat(unrelated)
		assert.NoError(t, err)
	})
}
