package assembly

import (
	"strconv"

	"github.com/beevik/etree"
)

// FileSetsBuilder builds the fileSets element of a descriptor.
type FileSetsBuilder struct {
	parent *DescriptorBuilder
	sets   *etree.Element
}

// FileSet opens a new fileSet scope.
func (b *FileSetsBuilder) FileSet() *FileSetBuilder {
	return &FileSetBuilder{
		parent: b,
		set:    b.sets.CreateElement("fileSet"),
	}
}

// Up closes the scope and returns the descriptor builder.
func (b *FileSetsBuilder) Up() *DescriptorBuilder {
	return b.parent
}

// FileSetBuilder builds a single fileSet element.
type FileSetBuilder struct {
	parent   *FileSetsBuilder
	set      *etree.Element
	includes *etree.Element
	excludes *etree.Element
}

// Directory sets the source directory of the file set.
func (b *FileSetBuilder) Directory(dir string) *FileSetBuilder {
	b.set.CreateElement("directory").SetText(dir)
	return b
}

// OutputDirectory sets where the file set lands inside the archive.
func (b *FileSetBuilder) OutputDirectory(dir string) *FileSetBuilder {
	b.set.CreateElement("outputDirectory").SetText(dir)
	return b
}

// UseDefaultExcludes toggles the tool's default exclusion patterns.
func (b *FileSetBuilder) UseDefaultExcludes(value bool) *FileSetBuilder {
	b.set.CreateElement("useDefaultExcludes").SetText(strconv.FormatBool(value))
	return b
}

// FileMode sets the octal mode applied to archived files.
func (b *FileSetBuilder) FileMode(mode string) *FileSetBuilder {
	b.set.CreateElement("fileMode").SetText(mode)
	return b
}

// DirectoryMode sets the octal mode applied to archived directories.
func (b *FileSetBuilder) DirectoryMode(mode string) *FileSetBuilder {
	b.set.CreateElement("directoryMode").SetText(mode)
	return b
}

// LineEnding sets the line-ending normalization policy.
func (b *FileSetBuilder) LineEnding(ending string) *FileSetBuilder {
	b.set.CreateElement("lineEnding").SetText(ending)
	return b
}

// Filtered toggles property filtering of the file set contents.
func (b *FileSetBuilder) Filtered(value bool) *FileSetBuilder {
	b.set.CreateElement("filtered").SetText(strconv.FormatBool(value))
	return b
}

// Include appends one include pattern, creating the includes element on
// first use.
func (b *FileSetBuilder) Include(pattern string) *FileSetBuilder {
	if b.includes == nil {
		b.includes = b.set.CreateElement("includes")
	}
	b.includes.CreateElement("include").SetText(pattern)
	return b
}

// Exclude appends one exclude pattern, creating the excludes element on
// first use.
func (b *FileSetBuilder) Exclude(pattern string) *FileSetBuilder {
	if b.excludes == nil {
		b.excludes = b.set.CreateElement("excludes")
	}
	b.excludes.CreateElement("exclude").SetText(pattern)
	return b
}

// Up closes the scope and returns the fileSets builder.
func (b *FileSetBuilder) Up() *FileSetsBuilder {
	return b.parent
}
