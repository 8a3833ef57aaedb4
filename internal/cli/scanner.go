package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/plugen/plugen/internal/utils"
)

// DirectoryScanner finds Go package directories to scan for entry points
type DirectoryScanner struct{}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{}
}

// ScanDirectories resolves the given directories into the list of package
// directories containing Go files. Supports Go-style "./..." patterns for
// recursive scanning.
func (s *DirectoryScanner) ScanDirectories(rootDirs []string) ([]string, error) {
	var packageDirs []string
	seen := make(map[string]bool)

	for _, rootDir := range rootDirs {
		recursive := false
		baseDir := rootDir
		if strings.HasSuffix(rootDir, "/...") {
			recursive = true
			baseDir = strings.TrimSuffix(rootDir, "/...")
			if baseDir == "" {
				baseDir = "."
			}
		}

		cleanPath, err := filepath.Abs(baseDir)
		if err != nil {
			return nil, utils.WrapScanError(baseDir, err)
		}

		if recursive {
			err = filepath.Walk(cleanPath, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() {
					return nil
				}
				if skipDir(info.Name()) && path != cleanPath {
					return filepath.SkipDir
				}
				has, err := hasGoFiles(path)
				if err != nil {
					return err
				}
				if has && !seen[path] {
					seen[path] = true
					packageDirs = append(packageDirs, path)
				}
				return nil
			})
			if err != nil {
				return nil, utils.WrapScanError(cleanPath, err)
			}
		} else {
			has, err := hasGoFiles(cleanPath)
			if err != nil {
				return nil, utils.WrapScanError(cleanPath, err)
			}
			if has && !seen[cleanPath] {
				seen[cleanPath] = true
				packageDirs = append(packageDirs, cleanPath)
			}
		}
	}

	return packageDirs, nil
}

// skipDir filters out directories that never hold scannable packages
func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return true
	}
	return name == "vendor" || name == "testdata"
}

// hasGoFiles reports whether a directory contains at least one
// non-test Go file
func hasGoFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go") {
			return true, nil
		}
	}
	return false, nil
}
