// Package generator renders the plugin registration source file and the
// host discovery imports descriptor from scanned entry-point metadata.
package generator

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/tools/imports"

	"github.com/plugen/plugen/internal/manifest"
	"github.com/plugen/plugen/internal/models"
	"github.com/plugen/plugen/internal/utils"
	"github.com/plugen/plugen/pkg/plugen"
)

// runtimePkg is the import path of the registration contract package.
const runtimePkg = "github.com/plugen/plugen/pkg/plugen"

// generatedSourcesSubdir is where generated code lives under the build dir.
const generatedSourcesSubdir = "generated-sources/plugin"

// Config carries everything one generation run needs
type Config struct {
	// Manifest is the loaded project manifest
	Manifest *manifest.Manifest

	// ModulePath is the plugin project's module path, used to build the
	// fully qualified generated type
	ModulePath string

	// BuildDir is the build output directory (generated sources go under
	// <BuildDir>/generated-sources/plugin)
	BuildDir string

	// ClassesDir is the compiled output directory the imports descriptor
	// is written under
	ClassesDir string

	// TargetPackage is the module-relative package path for generated
	// code; auto-detected from the first entry point when blank
	TargetPackage string

	// ComponentScanBase is embedded into the generated metadata when set
	ComponentScanBase string

	// RegistrationName and APIVersion override the manifest fallback
	// chains when non-blank
	RegistrationName string
	APIVersion       string
}

// Generator renders and persists registration artifacts
type Generator struct {
	diagnostics *utils.DiagnosticSystem
}

// NewGenerator creates a generator reporting through the given diagnostics
func NewGenerator(diagnostics *utils.DiagnosticSystem) *Generator {
	return &Generator{diagnostics: diagnostics}
}

// Generate runs the full pipeline over the scanned packages. When no entry
// points were discovered it warns and returns an empty result without
// touching the filesystem; that is not an error.
func (g *Generator) Generate(cfg Config, packages []*models.PackageMetadata) (*models.Result, error) {
	pluginName := cfg.Manifest.RegistrationName(cfg.RegistrationName)
	apiVersion := cfg.Manifest.APIVersion(cfg.APIVersion)

	g.diagnostics.Info("Using pluginName = %s, version = %s", pluginName, apiVersion)

	entryPoints, firstPackage, err := g.collectEntryPoints(packages, pluginName)
	if err != nil {
		return nil, err
	}

	result := &models.Result{EntryPointsFound: len(entryPoints)}

	if len(entryPoints) == 0 {
		g.diagnostics.Warn("No entry points (plugen::entrypoint) found, skipping generation of %s", plugen.GeneratedTypeName)
		return result, nil
	}
	g.diagnostics.Info("Total entry points found: %d", len(entryPoints))

	pkgPath := g.resolvePackagePath(cfg, firstPackage)
	packageName := packageNameFor(pkgPath)
	if pkgPath == "." {
		// Module-root package: keep its declared name, no subdirectory
		packageName = firstPackage.PackageName
	}

	scanBase := cfg.ComponentScanBase
	if strings.TrimSpace(scanBase) == "" {
		scanBase = pkgPath
	}

	source, err := g.renderRegistration(cfg, packageName, pluginName, apiVersion, scanBase, entryPoints)
	if err != nil {
		return nil, err
	}

	generatedSourceDir := filepath.Join(cfg.BuildDir, filepath.FromSlash(generatedSourcesSubdir))
	targetDir := filepath.Join(generatedSourceDir, filepath.FromSlash(pkgPath))
	sourcePath := filepath.Join(targetDir, plugen.GeneratedFileName)

	if err := writeFile(sourcePath, source); err != nil {
		return nil, err
	}
	result.RegistrationFile = &models.GeneratedFile{FilePath: sourcePath, Content: source}
	result.SourceRoots = append(result.SourceRoots, generatedSourceDir)

	fqtn := qualifiedTypeName(cfg.ModulePath, pkgPath)
	result.FQTN = fqtn
	g.diagnostics.Info("Generated %s: %s as %s", plugen.GeneratedTypeName, sourcePath, fqtn)

	importsPath := filepath.Join(cfg.ClassesDir, filepath.FromSlash(plugen.ImportsPath))
	importsContent := fqtn + "\n"
	if err := writeFile(importsPath, importsContent); err != nil {
		return nil, err
	}
	result.ImportsFile = &models.GeneratedFile{FilePath: importsPath, Content: importsContent}
	g.diagnostics.Info("Generated %s with auto-configuration: %s", importsPath, fqtn)

	return result, nil
}

// collectEntryPoints flattens the per-package metadata in discovery order
// and rejects declared-name conflicts across packages.
func (g *Generator) collectEntryPoints(packages []*models.PackageMetadata, pluginName string) ([]models.EntryPointMetadata, *models.PackageMetadata, error) {
	var entryPoints []models.EntryPointMetadata
	var firstPackage *models.PackageMetadata
	seen := make(map[string]models.EntryPointMetadata)

	for _, pkg := range packages {
		for _, ep := range pkg.EntryPoints {
			if existing, exists := seen[ep.Name]; exists {
				return nil, nil, &models.GeneratorError{
					Type:    models.ErrorTypeValidation,
					File:    ep.FileName,
					Line:    ep.Line,
					Message: fmt.Sprintf("duplicate entry point name %q across packages", ep.Name),
					Suggestions: []string{
						"Entry point names must be unique across the whole plugin",
					},
					Context: map[string]interface{}{
						"existing_type":    existing.StructName,
						"existing_package": existing.PackageDir,
						"conflicting_type": ep.StructName,
					},
				}
			}
			seen[ep.Name] = ep
			entryPoints = append(entryPoints, ep)
			if firstPackage == nil {
				firstPackage = pkg
			}
			g.diagnostics.Info("Found entry point: %s (name = %q, package = %s)", ep.StructName, ep.Name, pkg.PackageName)
			for _, methodName := range ep.MethodOrder {
				m := ep.Methods[methodName]
				g.diagnostics.Verbose("  Found entry point method: %s (name=%q, argTypes=%v, returnType=%q)",
					m.GoName, m.Name, m.ArgTypes, m.ReturnType)
			}
		}
	}

	return entryPoints, firstPackage, nil
}

// resolvePackagePath picks the configured target package, the package of
// the first discovered entry point, or the fixed default, in that order.
func (g *Generator) resolvePackagePath(cfg Config, firstPackage *models.PackageMetadata) string {
	if strings.TrimSpace(cfg.TargetPackage) != "" {
		return path.Clean(filepath.ToSlash(cfg.TargetPackage))
	}

	if firstPackage != nil && strings.TrimSpace(firstPackage.ImportRel) != "" {
		detected := path.Clean(firstPackage.ImportRel)
		g.diagnostics.Info("Auto-detected generated package: %s", detected)
		return detected
	}

	g.diagnostics.Warn("Falling back to default package: %s", plugen.DefaultPackagePath)
	return plugen.DefaultPackagePath
}

func (g *Generator) renderRegistration(cfg Config, packageName, pluginName, apiVersion, scanBase string, entryPoints []models.EntryPointMetadata) (string, error) {
	view := registrationView{
		PackageName: packageName,
		RuntimePkg:  runtimePkg,
		TypeName:    plugen.GeneratedTypeName,
		PluginName:  EscapeLiteral(pluginName),
		Version:     EscapeLiteral(apiVersion),
		Metadata:    g.buildMetadata(cfg, pluginName, apiVersion, scanBase),
	}

	for _, ep := range entryPoints {
		epView := entryPointView{
			Name:       EscapeLiteral(ep.Name),
			PluginName: EscapeLiteral(pluginName),
		}
		for _, methodName := range ep.MethodOrder {
			m := ep.Methods[methodName]
			mv := methodView{
				Name:       EscapeLiteral(m.Name),
				ReturnType: EscapeLiteral(m.ReturnType),
			}
			for _, arg := range m.ArgTypes {
				mv.ArgTypes = append(mv.ArgTypes, EscapeLiteral(arg))
			}
			epView.Methods = append(epView.Methods, mv)
		}
		view.EntryPoints = append(view.EntryPoints, epView)
	}

	var buf bytes.Buffer
	if err := registrationTemplate.Execute(&buf, view); err != nil {
		return "", &models.GeneratorError{
			Type:    models.ErrorTypeGeneration,
			Message: fmt.Sprintf("failed to render registration source: %v", err),
			Cause:   err,
		}
	}

	formatted, err := imports.Process(plugen.GeneratedFileName, buf.Bytes(), nil)
	if err != nil {
		return "", &models.GeneratorError{
			Type:    models.ErrorTypeGeneration,
			Message: fmt.Sprintf("generated source does not compile: %v", err),
			Cause:   err,
		}
	}

	return string(formatted), nil
}

// buildMetadata assembles the metadata entries in their fixed order. Blank
// attributes are omitted rather than emitted empty.
func (g *Generator) buildMetadata(cfg Config, pluginName, apiVersion, scanBase string) []metadataEntry {
	m := cfg.Manifest
	var entries []metadataEntry

	put := func(key, value string) {
		if strings.TrimSpace(value) != "" {
			entries = append(entries, metadataEntry{Key: key, Value: EscapeLiteral(value)})
		}
	}

	put("Plugen-Name", m.Name)
	put("Plugen-Version", m.Version)
	put("Plugen-Url", m.URL)
	put("Plugen-Description", m.Description)
	put("Plugen-GroupId", m.GroupID)
	put("Plugen-ArtifactId", m.ArtifactID)

	if m.SCM != nil {
		put("Plugen-SCM-Connection", m.SCM.Connection)
		put("Plugen-SCM-URL", m.SCM.URL)
	}

	put("Plugen-License", m.LicenseString())

	if m.Organization != nil {
		put("Plugen-Organization", m.Organization.Name)
		put("Plugen-OrganizationUrl", m.Organization.URL)
	}

	if m.IssueManagement != nil {
		put("Plugen-IssueSystem", m.IssueManagement.System)
		put("Plugen-IssueUrl", m.IssueManagement.URL)
	}

	put("Plugen-BuildGo", runtime.Version())
	put("Plugen-BuildTime", time.Now().Format(time.RFC3339))
	put("Plugen-Author", m.Authors())
	put("Plugen-ComponentScan", scanBase)
	put("Plugen-RegistrationName", pluginName)
	put("Plugen-ApiVersion", apiVersion)

	return entries
}

// qualifiedTypeName builds the fully qualified generated type. A "." package
// path means the module root, where the module path alone qualifies the type.
func qualifiedTypeName(modulePath, pkgPath string) string {
	switch {
	case pkgPath == "." || pkgPath == "":
		if strings.TrimSpace(modulePath) == "" {
			return plugen.GeneratedTypeName
		}
		return modulePath + "." + plugen.GeneratedTypeName
	case strings.TrimSpace(modulePath) == "":
		return pkgPath + "." + plugen.GeneratedTypeName
	default:
		return modulePath + "/" + pkgPath + "." + plugen.GeneratedTypeName
	}
}

// packageNameFor derives a valid package identifier from a package path
func packageNameFor(pkgPath string) string {
	base := path.Base(pkgPath)
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || (base[0] >= '0' && base[0] <= '9') {
		base = "pkg" + base
	}
	return base
}

// writeFile creates the parent directory and writes the file. Existing
// files are overwritten silently; any I/O failure is fatal.
func writeFile(filePath, content string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &models.GeneratorError{
			Type:    models.ErrorTypeFileSystem,
			Message: utils.WrapCreateError(fmt.Sprintf("directory %s", dir), err).Error(),
			Suggestions: []string{
				"Check write permissions for the target directory",
				"Verify there's enough disk space",
			},
			Cause: err,
		}
	}

	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		return &models.GeneratorError{
			Type:    models.ErrorTypeFileSystem,
			Message: utils.WrapWriteError(filePath, err).Error(),
			Suggestions: []string{
				"Check write permissions for the target directory",
			},
			Cause: err,
		}
	}

	return nil
}
