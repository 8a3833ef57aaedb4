// Package assembly builds packaging assembly descriptors through a fluent
// API. Builders form a tree: nested builders hold a reference to their
// parent and return it from Up(), so a whole descriptor can be written as
// one chain. Child elements are appended in call order; repeated calls
// append repeated elements and nothing is deduplicated or validated
// against the schema.
package assembly

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/beevik/etree"
)

const (
	schemaNamespace = "http://maven.apache.org/ASSEMBLY/2.2.0"
	schemaInstance  = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLocation  = "http://maven.apache.org/ASSEMBLY/2.2.0 https://maven.apache.org/xsd/assembly-2.2.0.xsd"
)

// DescriptorBuilder builds the root of an assembly descriptor document.
type DescriptorBuilder struct {
	doc     *etree.Document
	root    *etree.Element
	formats *etree.Element
	id      string
}

// NewDescriptor creates an empty descriptor with the assembly-2.2.0
// schema attributes and an empty formats element.
func NewDescriptor() *DescriptorBuilder {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("assembly")
	root.CreateAttr("xmlns", schemaNamespace)
	root.CreateAttr("xmlns:xsi", schemaInstance)
	root.CreateAttr("xsi:schemaLocation", schemaLocation)

	return &DescriptorBuilder{
		doc:     doc,
		root:    root,
		formats: root.CreateElement("formats"),
	}
}

// ID sets the descriptor identifier, which also names the output file.
func (b *DescriptorBuilder) ID(id string) *DescriptorBuilder {
	b.id = id
	b.root.CreateElement("id").SetText(id)
	return b
}

// Format appends one output format, e.g. "zip" or "tar.gz".
func (b *DescriptorBuilder) Format(format string) *DescriptorBuilder {
	b.formats.CreateElement("format").SetText(format)
	return b
}

// IncludeBaseDirectory toggles whether the archive contains a base directory.
func (b *DescriptorBuilder) IncludeBaseDirectory(value bool) *DescriptorBuilder {
	b.root.CreateElement("includeBaseDirectory").SetText(strconv.FormatBool(value))
	return b
}

// FileSets opens a fileSets scope.
func (b *DescriptorBuilder) FileSets() *FileSetsBuilder {
	return &FileSetsBuilder{
		parent: b,
		sets:   b.root.CreateElement("fileSets"),
	}
}

// DependencySets opens a dependencySets scope.
func (b *DescriptorBuilder) DependencySets() *DependencySetsBuilder {
	return &DependencySetsBuilder{
		parent: b,
		sets:   b.root.CreateElement("dependencySets"),
	}
}

// Build serializes the descriptor to <dir>/<id>.xml, overwriting any
// existing file, and returns the written path.
func (b *DescriptorBuilder) Build(dir string) (string, error) {
	if b.id == "" {
		return "", fmt.Errorf("assembly descriptor id is required before build")
	}

	b.doc.Indent(4)
	target := filepath.Join(dir, b.id+".xml")
	if err := b.doc.WriteToFile(target); err != nil {
		return "", fmt.Errorf("failed to write assembly descriptor %s: %w", target, err)
	}
	return target, nil
}
