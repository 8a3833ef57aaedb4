package cli

// Config holds the settings for one generation run
type Config struct {
	// Directories to scan for annotated Go packages, supports "./..."
	Directories []string

	// ManifestPath is the plugin manifest location, defaults to
	// plugin.yaml in the working directory
	ManifestPath string

	// BuildDir is the build output directory generated sources go under
	BuildDir string

	// ClassesDir is the compiled output directory the imports descriptor
	// is written under
	ClassesDir string

	// PackageFilter restricts scanning to packages whose module-relative
	// import path starts with this prefix; empty scans everything
	PackageFilter string

	// TargetPackage overrides the generated code package path
	TargetPackage string

	// ComponentScanBase is embedded in the generated metadata
	ComponentScanBase string

	// RegistrationName and APIVersion override the manifest fallbacks
	RegistrationName string
	APIVersion       string

	// ModuleName overrides go.mod module resolution
	ModuleName string

	Verbose bool
}

// GenerationSummary collects statistics over a run for final reporting
type GenerationSummary struct {
	PackagesProcessed int
	EntryPointsFound  int
	MethodsFound      int
	GeneratedFiles    []string
	SourceRoots       []string
	Skipped           bool
}
