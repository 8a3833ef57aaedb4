package cli

import (
	"fmt"
	"strings"

	"github.com/plugen/plugen/internal/generator"
	"github.com/plugen/plugen/internal/manifest"
	"github.com/plugen/plugen/internal/models"
	"github.com/plugen/plugen/internal/parser"
	"github.com/plugen/plugen/internal/utils"
)

// Generator coordinates the CLI generation process: manifest loading,
// package scanning, entry-point parsing and artifact generation.
type Generator struct {
	scanner        *DirectoryScanner
	moduleResolver *ModuleResolver
	parser         *parser.Parser
	codeGenerator  *generator.Generator
	diagnostics    *utils.DiagnosticSystem
	summary        GenerationSummary
}

// NewGenerator creates a new CLI generator
func NewGenerator(diagnostics *utils.DiagnosticSystem) *Generator {
	return &Generator{
		scanner:        NewDirectoryScanner(),
		moduleResolver: NewModuleResolver(),
		parser:         parser.NewParser(),
		codeGenerator:  generator.NewGenerator(diagnostics),
		diagnostics:    diagnostics,
		summary:        GenerationSummary{GeneratedFiles: make([]string, 0)},
	}
}

// GetSummary returns the generation summary of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run executes the complete generation process
func (g *Generator) Run(config Config) error {
	g.summary = GenerationSummary{GeneratedFiles: make([]string, 0)}

	manifestPath := config.ManifestPath
	if manifestPath == "" {
		manifestPath = manifest.DefaultFileName
	}

	g.diagnostics.StartProgress("Loading plugin manifest")
	m, err := manifest.Load(manifestPath)
	if err != nil {
		g.diagnostics.EndProgress(false, "")
		return &models.GeneratorError{
			Type:    models.ErrorTypeValidation,
			Message: fmt.Sprintf("Failed to load plugin manifest: %v", err),
			Suggestions: []string{
				fmt.Sprintf("Create a %s file in the project root", manifest.DefaultFileName),
				"Or point --manifest at the manifest location",
			},
			Context: map[string]interface{}{
				"manifest_path": manifestPath,
			},
			Cause: err,
		}
	}
	g.diagnostics.EndProgress(true, manifestPath)

	g.diagnostics.StartProgress("Resolving module name")
	moduleName, err := g.moduleResolver.Resolve(config.ModuleName)
	if err != nil {
		g.diagnostics.EndProgress(false, "")
		return &models.GeneratorError{
			Type:    models.ErrorTypeValidation,
			Message: fmt.Sprintf("Failed to resolve module name: %v", err),
			Suggestions: []string{
				"Check your go.mod file exists and is valid",
				"Ensure you're running from the correct directory",
				"Try specifying --module flag explicitly",
			},
			Context: map[string]interface{}{
				"provided_module": config.ModuleName,
				"directories":     config.Directories,
			},
			Cause: err,
		}
	}
	g.diagnostics.EndProgress(true, moduleName)
	g.diagnostics.Debug("Resolved module name: %s", moduleName)

	g.diagnostics.StartProgress("Scanning directories for Go packages")
	packageDirs, err := g.scanner.ScanDirectories(config.Directories)
	if err != nil {
		g.diagnostics.EndProgress(false, "")
		return &models.GeneratorError{
			Type:    models.ErrorTypeFileSystem,
			Message: fmt.Sprintf("Failed to scan directories: %v", err),
			Suggestions: []string{
				"Check that the specified directories exist",
				"Ensure you have read permissions for the directories",
			},
			Context: map[string]interface{}{
				"directories": config.Directories,
			},
			Cause: err,
		}
	}

	if len(packageDirs) == 0 {
		g.diagnostics.EndProgress(false, "")
		return &models.GeneratorError{
			Type:    models.ErrorTypeValidation,
			Message: "No Go packages found in specified directories",
			Suggestions: []string{
				"Ensure the directories contain Go files",
				"Try scanning parent directories or use './...' pattern",
			},
			Context: map[string]interface{}{
				"directories": config.Directories,
			},
		}
	}
	g.diagnostics.EndProgress(true, fmt.Sprintf("%d packages", len(packageDirs)))

	allMetadata, err := g.parsePackages(config, packageDirs, moduleName)
	if err != nil {
		return err
	}
	g.summary.PackagesProcessed = len(allMetadata)

	result, err := g.codeGenerator.Generate(generator.Config{
		Manifest:          m,
		ModulePath:        moduleName,
		BuildDir:          config.BuildDir,
		ClassesDir:        config.ClassesDir,
		TargetPackage:     config.TargetPackage,
		ComponentScanBase: config.ComponentScanBase,
		RegistrationName:  config.RegistrationName,
		APIVersion:        config.APIVersion,
	}, allMetadata)
	if err != nil {
		return err
	}

	g.collectSummary(allMetadata, result)
	return nil
}

// parsePackages parses every scanned directory, resolves its
// module-relative import path and applies the package filter.
func (g *Generator) parsePackages(config Config, packageDirs []string, moduleName string) ([]*models.PackageMetadata, error) {
	filter := strings.TrimSpace(config.PackageFilter)

	var allMetadata []*models.PackageMetadata
	for _, packageDir := range packageDirs {
		importRel, err := g.moduleResolver.RelativePackagePath(packageDir)
		if err != nil {
			return nil, utils.WrapScanError(packageDir, err)
		}

		if filter != "" && !strings.HasPrefix(importRel, filter) {
			g.diagnostics.Debug("Skipping package %s (outside filter %s)", importRel, filter)
			continue
		}

		g.diagnostics.Verbose("Parsing package: %s", packageDir)
		metadata, err := g.parser.ParseDirectory(packageDir)
		if err != nil {
			if genErr, ok := err.(*models.GeneratorError); ok {
				if genErr.Context == nil {
					genErr.Context = make(map[string]interface{})
				}
				genErr.Context["package_directory"] = packageDir
				genErr.Context["module_name"] = moduleName
				return nil, genErr
			}
			return nil, &models.GeneratorError{
				Type:    models.ErrorTypeValidation,
				Message: fmt.Sprintf("Failed to parse package %s: %v", packageDir, err),
				Suggestions: []string{
					"Check for syntax errors in Go files",
					"Verify annotation syntax is correct",
				},
				Context: map[string]interface{}{
					"package_directory": packageDir,
					"module_name":       moduleName,
				},
				Cause: err,
			}
		}

		metadata.ImportRel = importRel
		allMetadata = append(allMetadata, metadata)
	}

	return allMetadata, nil
}

// collectSummary fills the run summary from the generation result
func (g *Generator) collectSummary(allMetadata []*models.PackageMetadata, result *models.Result) {
	for _, metadata := range allMetadata {
		for _, ep := range metadata.EntryPoints {
			g.summary.MethodsFound += len(ep.Methods)
		}
	}
	g.summary.EntryPointsFound = result.EntryPointsFound
	g.summary.Skipped = result.Skipped()
	g.summary.SourceRoots = result.SourceRoots
	if result.RegistrationFile != nil {
		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, result.RegistrationFile.FilePath)
	}
	if result.ImportsFile != nil {
		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, result.ImportsFile.FilePath)
	}
}
