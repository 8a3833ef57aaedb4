package models

// ErrorType represents different types of generator errors
type ErrorType int

const (
	ErrorTypeAnnotationSyntax ErrorType = iota
	ErrorTypeValidation
	ErrorTypeGeneration
	ErrorTypeFileSystem
)

// MethodMetadata represents a discovered entry-point method
type MethodMetadata struct {
	// Name is the declared external name from the annotation
	Name string

	// GoName is the Go method identifier in the source
	GoName string

	// ArgTypes holds parameter type descriptors in declaration order
	ArgTypes []string

	// ReturnType is the rendered return type descriptor
	ReturnType string

	// Source location for error reporting
	FileName string
	Line     int
}

// EntryPointMetadata represents a discovered entry point type
type EntryPointMetadata struct {
	// Name is the declared external name from the annotation
	Name string

	// StructName is the Go type identifier in the source
	StructName string

	// PackageName is the name of the package declaring the type
	PackageName string

	// PackageDir is the directory the type was discovered in
	PackageDir string

	// Methods holds the entry-point methods keyed by declared name;
	// MethodOrder preserves declaration order for rendering
	Methods     map[string]MethodMetadata
	MethodOrder []string

	// Source location for error reporting
	FileName string
	Line     int
}

// PackageMetadata represents all entry points extracted from one package
type PackageMetadata struct {
	PackageName string

	// PackagePath is the directory the package was scanned from
	PackagePath string

	// ImportRel is the module-relative import path of the package,
	// resolved by the CLI layer
	ImportRel string

	EntryPoints []EntryPointMetadata
}
