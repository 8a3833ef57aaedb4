// Package plugen defines the contract between generated plugin registration
// code and the host application framework. The plugen CLI emits a source file
// declaring a type that implements Registration; the host discovers that type
// through the imports descriptor written under ImportsPath.
package plugen

// Method describes a single externally invocable entry-point method.
type Method struct {
	// Name is the declared external name, distinct from the Go identifier
	Name string

	// ArgTypes holds the parameter type descriptors in declaration order
	ArgTypes []string

	// ReturnType is the rendered return type descriptor
	ReturnType string
}

// EntryPoint describes one discovered entry point and its methods.
type EntryPoint struct {
	// Name is the declared external name of the entry point
	Name string

	// PluginName is the registration name of the owning plugin
	PluginName string

	// Methods maps declared method names to their descriptors
	Methods map[string]Method
}

// Registration is the fixed interface implemented by every generated
// registration type. Implementations are built once at construction and
// never mutated afterwards.
type Registration interface {
	// PluginName returns the resolved registration name of the plugin
	PluginName() string

	// Version returns the API version the plugin targets
	Version() string

	// EntryPoints returns all discovered entry points keyed by declared name
	EntryPoints() map[string]EntryPoint

	// Metadata returns the project metadata embedded at generation time
	Metadata() map[string]string
}

// ImportsPath is the host-framework convention path, relative to the
// compiled output directory, of the single-line descriptor holding the
// fully qualified generated registration type.
const ImportsPath = "META-INF/plugen/autoconfiguration.imports"

// GeneratedFileName is the file name of the generated registration source.
const GeneratedFileName = "plugin_registration.gen.go"

// GeneratedTypeName is the type name declared by the generated source.
const GeneratedTypeName = "PluginRegistrationImpl"

// DefaultPackagePath is the fallback package path used when no target
// package is configured and no entry points reveal one.
const DefaultPackagePath = "generated/plugin"
