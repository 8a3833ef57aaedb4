package cli

import (
	"os"
	"path/filepath"

	"github.com/plugen/plugen/internal/models"
	"github.com/plugen/plugen/internal/utils"
	"github.com/plugen/plugen/pkg/plugen"
)

// Cleaner removes previously generated registration artifacts
type Cleaner struct {
	diagnostics *utils.DiagnosticSystem
}

// NewCleaner creates a new cleaner
func NewCleaner(diagnostics *utils.DiagnosticSystem) *Cleaner {
	return &Cleaner{diagnostics: diagnostics}
}

// Clean removes the generated source tree under the build directory and
// the imports descriptor under the classes directory. Missing paths are
// not an error.
func (c *Cleaner) Clean(buildDir, classesDir string) error {
	sourcesRoot := filepath.Join(buildDir, "generated-sources", "plugin")
	if err := c.removeAll(sourcesRoot); err != nil {
		return err
	}

	importsFile := filepath.Join(classesDir, filepath.FromSlash(plugen.ImportsPath))
	if err := c.removeAll(importsFile); err != nil {
		return err
	}

	// Drop the META-INF/plugen directory too when it is now empty
	importsDir := filepath.Dir(importsFile)
	if entries, err := os.ReadDir(importsDir); err == nil && len(entries) == 0 {
		if err := c.removeAll(importsDir); err != nil {
			return err
		}
	}

	return nil
}

func (c *Cleaner) removeAll(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		c.diagnostics.Debug("Nothing to clean at %s", path)
		return nil
	}

	c.diagnostics.Verbose("Removing %s", path)
	if err := os.RemoveAll(path); err != nil {
		return &models.GeneratorError{
			Type:    models.ErrorTypeFileSystem,
			Message: "Failed to remove generated artifacts: " + err.Error(),
			Suggestions: []string{
				"Check write permissions for the build output directories",
			},
			Context: map[string]interface{}{
				"path": path,
			},
			Cause: err,
		}
	}
	return nil
}
