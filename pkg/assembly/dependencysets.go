package assembly

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/plugen/plugen/internal/manifest"
)

// DependencySetsBuilder builds the dependencySets element of a descriptor.
type DependencySetsBuilder struct {
	parent *DescriptorBuilder
	sets   *etree.Element
}

// DependencySet opens a new dependencySet scope.
func (b *DependencySetsBuilder) DependencySet() *DependencySetBuilder {
	return &DependencySetBuilder{
		parent: b,
		set:    b.sets.CreateElement("dependencySet"),
	}
}

// Up closes the scope and returns the descriptor builder.
func (b *DependencySetsBuilder) Up() *DescriptorBuilder {
	return b.parent
}

// DependencySetBuilder builds a single dependencySet element.
type DependencySetBuilder struct {
	parent   *DependencySetsBuilder
	set      *etree.Element
	includes *etree.Element
	excludes *etree.Element
}

// Include appends one artifact include pattern, creating the includes
// element on first use.
func (b *DependencySetBuilder) Include(pattern string) *DependencySetBuilder {
	if b.includes == nil {
		b.includes = b.set.CreateElement("includes")
	}
	b.includes.CreateElement("include").SetText(pattern)
	return b
}

// Exclude appends one artifact exclude pattern, creating the excludes
// element on first use.
func (b *DependencySetBuilder) Exclude(pattern string) *DependencySetBuilder {
	if b.excludes == nil {
		b.excludes = b.set.CreateElement("excludes")
	}
	b.excludes.CreateElement("exclude").SetText(pattern)
	return b
}

// ExcludeArtifact excludes a resolved dependency coordinate, wildcarding
// its type and classifier.
func (b *DependencySetBuilder) ExcludeArtifact(artifact manifest.Artifact) *DependencySetBuilder {
	return b.Exclude(artifact.ExcludePattern())
}

// OutputDirectory sets where the dependencies land inside the archive.
func (b *DependencySetBuilder) OutputDirectory(dir string) *DependencySetBuilder {
	b.set.CreateElement("outputDirectory").SetText(dir)
	return b
}

// UseProjectArtifact toggles inclusion of the project's own artifact.
func (b *DependencySetBuilder) UseProjectArtifact(value bool) *DependencySetBuilder {
	b.set.CreateElement("useProjectArtifact").SetText(strconv.FormatBool(value))
	return b
}

// UseTransitiveFiltering toggles transitive dependency filtering.
func (b *DependencySetBuilder) UseTransitiveFiltering(value bool) *DependencySetBuilder {
	b.set.CreateElement("useTransitiveFiltering").SetText(strconv.FormatBool(value))
	return b
}

// Unpack toggles unpacking of the dependencies into the archive.
func (b *DependencySetBuilder) Unpack(value bool) *DependencySetBuilder {
	b.set.CreateElement("unpack").SetText(strconv.FormatBool(value))
	return b
}

// Scope restricts the set to dependencies of the given scope.
func (b *DependencySetBuilder) Scope(scope string) *DependencySetBuilder {
	b.set.CreateElement("scope").SetText(scope)
	return b
}

// Up closes the scope and returns the dependencySets builder.
func (b *DependencySetBuilder) Up() *DependencySetsBuilder {
	return b.parent
}
