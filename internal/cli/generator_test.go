package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plugen/plugen/internal/models"
	"github.com/plugen/plugen/internal/utils"
)

func newTestDiagnostics() *utils.DiagnosticSystem {
	diagnostics := utils.NewQuietDiagnostics()
	diagnostics.SetOutput(io.Discard)
	return diagnostics
}

func setupPluginProject(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	writeGoMod(t, tempDir, "example.com/testplugin")

	manifestContent := `name: Test Plugin
version: 1.2.3
groupId: com.example
artifactId: test-plugin
description: Integration test plugin

developers:
  - name: Jane Doe
    email: jane@example.com
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "plugin.yaml"), []byte(manifestContent), 0644))

	actionsDir := filepath.Join(tempDir, "internal", "actions")
	require.NoError(t, os.MkdirAll(actionsDir, 0755))
	actionsContent := `package actions

//plugen::entrypoint calculator
type CalculatorActions struct{}

//plugen::method add
func (a *CalculatorActions) Add(x, y int) int {
	return x + y
}

//plugen::method describe
func (a *CalculatorActions) Describe() string {
	return "calculator"
}
`
	require.NoError(t, os.WriteFile(filepath.Join(actionsDir, "calculator.go"), []byte(actionsContent), 0644))

	// Package without annotations alongside the annotated one
	modelsDir := filepath.Join(tempDir, "internal", "models")
	require.NoError(t, os.MkdirAll(modelsDir, 0755))
	modelsContent := `package models

type Operand struct {
	Value int
}
`
	require.NoError(t, os.WriteFile(filepath.Join(modelsDir, "operand.go"), []byte(modelsContent), 0644))

	return tempDir
}

func TestGenerator_Run(t *testing.T) {
	t.Run("end to end generation", func(t *testing.T) {
		tempDir := setupPluginProject(t)
		chdir(t, tempDir)

		generator := NewGenerator(newTestDiagnostics())
		err := generator.Run(Config{
			Directories: []string{"./internal/..."},
			BuildDir:    "build",
			ClassesDir:  "build",
		})
		require.NoError(t, err)

		summary := generator.GetSummary()
		assert.Equal(t, 2, summary.PackagesProcessed)
		assert.Equal(t, 1, summary.EntryPointsFound)
		assert.Equal(t, 2, summary.MethodsFound)
		assert.False(t, summary.Skipped)
		require.Len(t, summary.GeneratedFiles, 2)

		sourcePath := filepath.Join("build", "generated-sources", "plugin",
			"internal", "actions", "plugin_registration.gen.go")
		content, err := os.ReadFile(sourcePath)
		require.NoError(t, err)
		assert.Contains(t, string(content), "type PluginRegistrationImpl struct")
		assert.Contains(t, string(content), `pluginName:  "test-plugin"`)

		importsPath := filepath.Join("build", "META-INF", "plugen", "autoconfiguration.imports")
		importsContent, err := os.ReadFile(importsPath)
		require.NoError(t, err)
		assert.Equal(t,
			"example.com/testplugin/internal/actions.PluginRegistrationImpl\n",
			string(importsContent))
	})

	t.Run("no entry points skips without error", func(t *testing.T) {
		tempDir := t.TempDir()
		writeGoMod(t, tempDir, "example.com/testplugin")
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "plugin.yaml"),
			[]byte("name: empty\nartifactId: empty-plugin\nversion: 0.1.0\n"), 0644))

		plainDir := filepath.Join(tempDir, "internal", "plain")
		require.NoError(t, os.MkdirAll(plainDir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(plainDir, "plain.go"),
			[]byte("package plain\n\ntype Nothing struct{}\n"), 0644))
		chdir(t, tempDir)

		generator := NewGenerator(newTestDiagnostics())
		err := generator.Run(Config{
			Directories: []string{"./internal/..."},
			BuildDir:    "build",
			ClassesDir:  "build",
		})
		require.NoError(t, err)

		summary := generator.GetSummary()
		assert.True(t, summary.Skipped)
		assert.Empty(t, summary.GeneratedFiles)

		_, statErr := os.Stat("build")
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("missing manifest", func(t *testing.T) {
		tempDir := t.TempDir()
		writeGoMod(t, tempDir, "example.com/testplugin")
		chdir(t, tempDir)

		generator := NewGenerator(newTestDiagnostics())
		err := generator.Run(Config{
			Directories: []string{"./..."},
			BuildDir:    "build",
			ClassesDir:  "build",
		})
		require.Error(t, err)

		var genErr *models.GeneratorError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, models.ErrorTypeValidation, genErr.Type)
		assert.NotEmpty(t, genErr.Suggestions)
	})

	t.Run("no packages found", func(t *testing.T) {
		tempDir := t.TempDir()
		writeGoMod(t, tempDir, "example.com/testplugin")
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "plugin.yaml"),
			[]byte("name: empty\nartifactId: empty-plugin\n"), 0644))
		emptyDir := filepath.Join(tempDir, "empty")
		require.NoError(t, os.MkdirAll(emptyDir, 0755))
		chdir(t, tempDir)

		generator := NewGenerator(newTestDiagnostics())
		err := generator.Run(Config{
			Directories: []string{"./empty"},
			BuildDir:    "build",
			ClassesDir:  "build",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "No Go packages found")
	})

	t.Run("package filter", func(t *testing.T) {
		tempDir := setupPluginProject(t)

		// Second annotated package that the filter must exclude
		extraDir := filepath.Join(tempDir, "pkg", "extra")
		require.NoError(t, os.MkdirAll(extraDir, 0755))
		extraContent := `package extra

//plugen::entrypoint extra
type ExtraActions struct{}
`
		require.NoError(t, os.WriteFile(filepath.Join(extraDir, "extra.go"), []byte(extraContent), 0644))
		chdir(t, tempDir)

		generator := NewGenerator(newTestDiagnostics())
		err := generator.Run(Config{
			Directories:   []string{"./..."},
			BuildDir:      "build",
			ClassesDir:    "build",
			PackageFilter: "internal/",
		})
		require.NoError(t, err)

		summary := generator.GetSummary()
		assert.Equal(t, 2, summary.PackagesProcessed)
		assert.Equal(t, 1, summary.EntryPointsFound)
	})

	t.Run("annotation error carries package context", func(t *testing.T) {
		tempDir := t.TempDir()
		writeGoMod(t, tempDir, "example.com/testplugin")
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "plugin.yaml"),
			[]byte("name: broken\nartifactId: broken-plugin\n"), 0644))

		brokenDir := filepath.Join(tempDir, "internal", "broken")
		require.NoError(t, os.MkdirAll(brokenDir, 0755))
		brokenContent := `package broken

//plugen::entrypoint
type BrokenActions struct{}
`
		require.NoError(t, os.WriteFile(filepath.Join(brokenDir, "broken.go"), []byte(brokenContent), 0644))
		chdir(t, tempDir)

		generator := NewGenerator(newTestDiagnostics())
		err := generator.Run(Config{
			Directories: []string{"./internal/..."},
			BuildDir:    "build",
			ClassesDir:  "build",
		})
		require.Error(t, err)

		var genErr *models.GeneratorError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, models.ErrorTypeAnnotationSyntax, genErr.Type)
		assert.Contains(t, genErr.Context, "package_directory")
	})
}
