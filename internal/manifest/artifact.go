package manifest

import "strings"

// ArtifactSeparator separates artifact coordinate fields.
const ArtifactSeparator = ":"

// ModuleSeparator separates the name and version of a module artifact.
const ModuleSeparator = "-"

// Artifact is a group:artifact:version coordinate.
type Artifact struct {
	GroupID    string
	ArtifactID string
	Version    string
}

// ParseArtifact parses a "group:artifact:version" coordinate. Missing
// trailing fields are left blank; blank input yields a zero Artifact.
func ParseArtifact(coord string) Artifact {
	var a Artifact
	if strings.TrimSpace(coord) == "" {
		return a
	}
	parts := strings.Split(coord, ArtifactSeparator)
	a.GroupID = parts[0]
	if len(parts) > 1 {
		a.ArtifactID = parts[1]
	}
	if len(parts) > 2 {
		a.Version = parts[2]
	}
	return a
}

// IsValid reports whether all coordinate fields are non-blank.
func (a Artifact) IsValid() bool {
	return strings.TrimSpace(a.GroupID) != "" &&
		strings.TrimSpace(a.ArtifactID) != "" &&
		strings.TrimSpace(a.Version) != ""
}

// Equals compares all three coordinate fields.
func (a Artifact) Equals(other Artifact) bool {
	return a.GroupID == other.GroupID &&
		a.ArtifactID == other.ArtifactID &&
		a.Version == other.Version
}

func (a Artifact) String() string {
	return a.GroupID + ArtifactSeparator + a.ArtifactID + ArtifactSeparator + a.Version
}

// ExcludePattern renders the coordinate as a dependency exclusion pattern,
// wildcarding the type and classifier fields.
func (a Artifact) ExcludePattern() string {
	return a.GroupID + ":" + a.ArtifactID + ":*:*:" + a.Version
}

// ModuleArtifact is a "name-version" module coordinate.
type ModuleArtifact struct {
	Name    string
	Version string
}

// ParseModuleArtifact splits a "name-version" coordinate at the first dash.
func ParseModuleArtifact(module string) ModuleArtifact {
	var m ModuleArtifact
	idx := strings.Index(module, ModuleSeparator)
	if idx < 0 {
		m.Name = module
		return m
	}
	m.Name = module[:idx]
	m.Version = module[idx+1:]
	return m
}

func (m ModuleArtifact) String() string {
	return m.Name + ModuleSeparator + m.Version
}
