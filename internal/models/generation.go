package models

// GeneratedFile represents one file produced by the generator
type GeneratedFile struct {
	FilePath string // path where the file was written
	Content  string // rendered content
}

// Result represents the outcome of one generation run
type Result struct {
	// FQTN is the fully qualified generated type
	// (package import path + "." + type name), empty when nothing was generated
	FQTN string

	// RegistrationFile is the generated registration source, nil when no
	// entry points were found
	RegistrationFile *GeneratedFile

	// ImportsFile is the host discovery descriptor, nil when no entry
	// points were found
	ImportsFile *GeneratedFile

	// SourceRoots lists directories registered for compilation
	SourceRoots []string

	// EntryPointsFound is the number of entry points discovered
	EntryPointsFound int
}

// Skipped reports whether the run short-circuited without output
func (r *Result) Skipped() bool {
	return r.EntryPointsFound == 0
}
