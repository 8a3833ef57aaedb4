package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// ModuleResolver resolves the plugin project's Go module information
type ModuleResolver struct {
	moduleName string
	moduleRoot string
}

// NewModuleResolver creates a new module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{}
}

// Resolve determines the module path for the plugin project. A non-empty
// customModule wins; otherwise go.mod is located by walking up from the
// working directory and parsed with the official modfile parser.
func (r *ModuleResolver) Resolve(customModule string) (string, error) {
	if r.moduleRoot == "" {
		root, err := r.findModuleRoot()
		if err != nil && customModule == "" {
			return "", fmt.Errorf("failed to determine module name: %w (consider using --module flag)", err)
		}
		r.moduleRoot = root
	}

	if customModule != "" {
		r.moduleName = customModule
		return customModule, nil
	}
	if r.moduleName != "" {
		return r.moduleName, nil
	}

	goModPath := filepath.Join(r.moduleRoot, "go.mod")
	data, err := os.ReadFile(goModPath)
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod file: %w", err)
	}

	modFile, err := modfile.Parse(goModPath, data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to parse go.mod file: %w", err)
	}
	if modFile.Module == nil {
		return "", fmt.Errorf("no module declaration found in go.mod")
	}

	r.moduleName = modFile.Module.Mod.Path
	return r.moduleName, nil
}

// RelativePackagePath returns the module-relative import path of a
// package directory, "." for the module root itself.
func (r *ModuleResolver) RelativePackagePath(packageDir string) (string, error) {
	root := r.moduleRoot
	if root == "" {
		// No go.mod found; fall back to the working directory
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		root = cwd
	}

	absDir, err := filepath.Abs(packageDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve package directory: %w", err)
	}

	relPath, err := filepath.Rel(root, absDir)
	if err != nil {
		return "", fmt.Errorf("failed to calculate relative path: %w", err)
	}

	return filepath.ToSlash(relPath), nil
}

// findModuleRoot walks up from the working directory looking for go.mod
func (r *ModuleResolver) findModuleRoot() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(currentDir, "go.mod")); err == nil {
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", fmt.Errorf("go.mod file not found")
}
