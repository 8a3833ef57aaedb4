package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plugen/plugen/internal/cli"
	"github.com/plugen/plugen/internal/manifest"
	"github.com/plugen/plugen/internal/utils"
	"github.com/plugen/plugen/pkg/assembly"
)

// version is stamped at build time via -ldflags
var version = "dev"

// errReported marks failures already shown through the diagnostics system
// so the top-level error printer stays quiet.
var errReported = errors.New("failure already reported")

var (
	verboseFlag bool
	quietFlag   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "plugen",
		Short: "Plugin registration generator",
		Long: `plugen scans Go packages for plugen:: annotations and generates the
plugin registration source plus the autoconfiguration imports descriptor
that host applications use to discover the plugin at startup.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output and detailed error reporting")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Only show errors and final results")

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newAssemblyCmd())
	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// newDiagnostics builds the diagnostic system from the global flags
func newDiagnostics() *utils.DiagnosticSystem {
	if quietFlag {
		return utils.NewQuietDiagnostics()
	}
	if verboseFlag {
		return utils.NewVerboseDiagnostics()
	}
	return utils.NewDiagnosticSystem(utils.DiagnosticInfo)
}

func newGenerateCmd() *cobra.Command {
	config := cli.Config{}

	cmd := &cobra.Command{
		Use:   "generate [directories...]",
		Short: "Generate the plugin registration source and imports descriptor",
		Long: `Scans the given directories (supports Go-style './...' patterns) for
structs annotated with //plugen::entrypoint and methods annotated with
//plugen::method, then generates the registration source file and the
autoconfiguration imports descriptor.

Examples:
  plugen generate ./...                              # scan everything recursively
  plugen generate ./internal/...                     # scan internal recursively
  plugen generate --name my-plugin ./pkg/actions     # explicit registration name
  plugen generate --module example.com/my/app ./...  # override go.mod module`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Directories = args
			config.Verbose = verboseFlag
			return runGenerate(config)
		},
	}

	cmd.Flags().StringVar(&config.ManifestPath, "manifest", "", "Plugin manifest path (default plugin.yaml)")
	cmd.Flags().StringVar(&config.BuildDir, "build-dir", "build", "Build output directory for generated sources")
	cmd.Flags().StringVar(&config.ClassesDir, "classes-dir", "", "Output directory for the imports descriptor (default the build directory)")
	cmd.Flags().StringVar(&config.PackageFilter, "filter", "", "Only process packages whose import path starts with this prefix")
	cmd.Flags().StringVar(&config.TargetPackage, "package", "", "Package path the registration source is generated into")
	cmd.Flags().StringVar(&config.ComponentScanBase, "scan-base", "", "Base package recorded for component scanning")
	cmd.Flags().StringVar(&config.RegistrationName, "name", "", "Explicit plugin registration name")
	cmd.Flags().StringVar(&config.APIVersion, "api-version", "", "Explicit API version the plugin targets")
	cmd.Flags().StringVar(&config.ModuleName, "module", "", "Custom module name (defaults to go.mod module)")

	return cmd
}

func runGenerate(config cli.Config) error {
	diagnostics := newDiagnostics()
	diagnostics.Section("Plugen Registration Generator")

	if config.ClassesDir == "" {
		config.ClassesDir = config.BuildDir
	}

	if verboseFlag {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Target directories: %s", strings.Join(config.Directories, ", "))
		diagnostics.List("Build directory: %s", config.BuildDir)
		if config.ModuleName != "" {
			diagnostics.List("Custom module: %s", config.ModuleName)
		}
		if config.PackageFilter != "" {
			diagnostics.List("Package filter: %s", config.PackageFilter)
		}
	}

	generator := cli.NewGenerator(diagnostics)
	if err := generator.Run(config); err != nil {
		diagnostics.Error("Generation failed: %v", err)
		return errReported
	}

	summary := generator.GetSummary()
	if summary.Skipped {
		diagnostics.Warn("No entry points found, nothing was generated")
		return nil
	}

	diagnostics.Summary("Generation Complete!", map[string]interface{}{
		"Packages processed": summary.PackagesProcessed,
		"Entry points found": summary.EntryPointsFound,
		"Methods found":      summary.MethodsFound,
		"Files generated":    len(summary.GeneratedFiles),
	})

	if verboseFlag && len(summary.GeneratedFiles) > 0 {
		diagnostics.Subsection("Generated Files")
		for _, file := range summary.GeneratedFiles {
			diagnostics.List("%s", file)
		}
	}

	diagnostics.Success("Plugin registration is ready")
	return nil
}

func newAssemblyCmd() *cobra.Command {
	var manifestPath string
	var targetDir string

	cmd := &cobra.Command{
		Use:   "assembly",
		Short: "Generate the distribution assembly descriptor",
		Long: `Translates the manifest's distribution section into an assembly
descriptor XML file written to the target directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssembly(manifestPath, targetDir)
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", manifest.DefaultFileName, "Plugin manifest path")
	cmd.Flags().StringVar(&targetDir, "target-dir", "build", "Directory the descriptor is written to")

	return cmd
}

func runAssembly(manifestPath, targetDir string) error {
	diagnostics := newDiagnostics()
	diagnostics.Section("Plugen Assembly Descriptor")

	m, err := manifest.Load(manifestPath)
	if err != nil {
		diagnostics.Error("Failed to load plugin manifest: %v", err)
		return errReported
	}
	if m.Distribution == nil {
		diagnostics.Error("Manifest %s has no distribution section", manifestPath)
		return errReported
	}

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		diagnostics.Error("Failed to create target directory: %v", err)
		return errReported
	}

	diagnostics.StartProgress("Writing assembly descriptor")
	written, err := assembly.FromDistribution(m.Distribution).Build(targetDir)
	if err != nil {
		diagnostics.EndProgress(false, "")
		diagnostics.Error("Failed to build assembly descriptor: %v", err)
		return errReported
	}
	diagnostics.EndProgress(true, written)

	diagnostics.Success("Assembly descriptor written to %s", written)
	return nil
}

func newCleanCmd() *cobra.Command {
	var buildDir string
	var classesDir string

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove generated registration artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			diagnostics := newDiagnostics()
			diagnostics.Section("Plugen Clean")

			if classesDir == "" {
				classesDir = buildDir
			}

			diagnostics.StartProgress("Cleaning generated artifacts")
			cleaner := cli.NewCleaner(diagnostics)
			if err := cleaner.Clean(buildDir, classesDir); err != nil {
				diagnostics.EndProgress(false, "")
				diagnostics.Error("Clean failed: %v", err)
				return errReported
			}
			diagnostics.EndProgress(true, "")

			diagnostics.Success("Generated artifacts removed from %s", filepath.Clean(buildDir))
			return nil
		},
	}

	cmd.Flags().StringVar(&buildDir, "build-dir", "build", "Build output directory generated sources live under")
	cmd.Flags().StringVar(&classesDir, "classes-dir", "", "Output directory holding the imports descriptor (default the build directory)")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the plugen version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("plugen %s\n", version)
		},
	}
}
