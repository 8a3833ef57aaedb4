package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	original, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(original) })
}

func writeGoMod(t *testing.T, dir, module string) {
	t.Helper()
	content := "module " + module + "\n\ngo 1.25\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte(content), 0644))
}

func TestModuleResolver_Resolve(t *testing.T) {
	t.Run("reads module from go.mod", func(t *testing.T) {
		tempDir := t.TempDir()
		writeGoMod(t, tempDir, "example.com/testplugin")
		chdir(t, tempDir)

		resolver := NewModuleResolver()
		module, err := resolver.Resolve("")
		require.NoError(t, err)
		assert.Equal(t, "example.com/testplugin", module)
	})

	t.Run("walks up to find go.mod", func(t *testing.T) {
		tempDir := t.TempDir()
		writeGoMod(t, tempDir, "example.com/testplugin")
		nested := filepath.Join(tempDir, "internal", "actions")
		require.NoError(t, os.MkdirAll(nested, 0755))
		chdir(t, nested)

		resolver := NewModuleResolver()
		module, err := resolver.Resolve("")
		require.NoError(t, err)
		assert.Equal(t, "example.com/testplugin", module)
	})

	t.Run("custom module wins", func(t *testing.T) {
		tempDir := t.TempDir()
		writeGoMod(t, tempDir, "example.com/testplugin")
		chdir(t, tempDir)

		resolver := NewModuleResolver()
		module, err := resolver.Resolve("example.com/custom")
		require.NoError(t, err)
		assert.Equal(t, "example.com/custom", module)
	})

	t.Run("invalid go.mod", func(t *testing.T) {
		tempDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "go.mod"), []byte("not a module file %%%"), 0644))
		chdir(t, tempDir)

		resolver := NewModuleResolver()
		_, err := resolver.Resolve("")
		require.Error(t, err)
	})
}

func TestModuleResolver_RelativePackagePath(t *testing.T) {
	tempDir := t.TempDir()
	writeGoMod(t, tempDir, "example.com/testplugin")
	actionsDir := filepath.Join(tempDir, "internal", "actions")
	require.NoError(t, os.MkdirAll(actionsDir, 0755))
	chdir(t, tempDir)

	resolver := NewModuleResolver()
	_, err := resolver.Resolve("")
	require.NoError(t, err)

	rel, err := resolver.RelativePackagePath(actionsDir)
	require.NoError(t, err)
	assert.Equal(t, "internal/actions", rel)

	rel, err = resolver.RelativePackagePath(tempDir)
	require.NoError(t, err)
	assert.Equal(t, ".", rel)
}
