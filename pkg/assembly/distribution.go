package assembly

import "github.com/plugen/plugen/internal/manifest"

// FromDistribution translates the manifest's distribution section into a
// descriptor builder, element order following the section's field order.
func FromDistribution(dist *manifest.Distribution) *DescriptorBuilder {
	b := NewDescriptor().ID(dist.ID)

	for _, format := range dist.Formats {
		b.Format(format)
	}

	if dist.IncludeBaseDirectory != nil {
		b.IncludeBaseDirectory(*dist.IncludeBaseDirectory)
	}

	if len(dist.FileSets) > 0 {
		sets := b.FileSets()
		for _, fs := range dist.FileSets {
			set := sets.FileSet()
			if fs.Directory != "" {
				set.Directory(fs.Directory)
			}
			if fs.OutputDirectory != "" {
				set.OutputDirectory(fs.OutputDirectory)
			}
			if fs.FileMode != "" {
				set.FileMode(fs.FileMode)
			}
			if fs.DirectoryMode != "" {
				set.DirectoryMode(fs.DirectoryMode)
			}
			if fs.LineEnding != "" {
				set.LineEnding(fs.LineEnding)
			}
			if fs.Filtered != nil {
				set.Filtered(*fs.Filtered)
			}
			for _, pattern := range fs.Includes {
				set.Include(pattern)
			}
			for _, pattern := range fs.Excludes {
				set.Exclude(pattern)
			}
			set.Up()
		}
		sets.Up()
	}

	if len(dist.DependencySets) > 0 {
		sets := b.DependencySets()
		for _, ds := range dist.DependencySets {
			set := sets.DependencySet()
			if ds.OutputDirectory != "" {
				set.OutputDirectory(ds.OutputDirectory)
			}
			if ds.Unpack != nil {
				set.Unpack(*ds.Unpack)
			}
			if ds.Scope != "" {
				set.Scope(ds.Scope)
			}
			for _, pattern := range ds.Includes {
				set.Include(pattern)
			}
			for _, pattern := range ds.Excludes {
				set.Exclude(pattern)
			}
			set.Up()
		}
		sets.Up()
	}

	return b
}
