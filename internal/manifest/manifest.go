// Package manifest loads and interprets the plugin.yaml project manifest,
// the per-module metadata the generator embeds into registration code.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the manifest file looked up when no path is configured.
const DefaultFileName = "plugin.yaml"

// ErrNotFound is returned when the manifest file does not exist.
var ErrNotFound = errors.New("plugin manifest not found")

// SCM holds source control coordinates.
type SCM struct {
	Connection string `yaml:"connection"`
	URL        string `yaml:"url"`
}

// License holds one declared license.
type License struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Organization holds the owning organization.
type Organization struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// IssueManagement holds the issue tracker coordinates.
type IssueManagement struct {
	System string `yaml:"system"`
	URL    string `yaml:"url"`
}

// Developer is one declared developer of this module.
type Developer struct {
	Name         string `yaml:"name"`
	Email        string `yaml:"email"`
	Organization string `yaml:"organization"`
}

// FileSet describes one distribution file set.
type FileSet struct {
	Directory       string   `yaml:"directory"`
	OutputDirectory string   `yaml:"outputDirectory"`
	FileMode        string   `yaml:"fileMode"`
	DirectoryMode   string   `yaml:"directoryMode"`
	LineEnding      string   `yaml:"lineEnding"`
	Filtered        *bool    `yaml:"filtered"`
	Includes        []string `yaml:"includes"`
	Excludes        []string `yaml:"excludes"`
}

// DependencySet describes one distribution dependency set.
type DependencySet struct {
	OutputDirectory string   `yaml:"outputDirectory"`
	Includes        []string `yaml:"includes"`
	Excludes        []string `yaml:"excludes"`
	Unpack          *bool    `yaml:"unpack"`
	Scope           string   `yaml:"scope"`
}

// Distribution describes how the plugin is packaged into an archive.
type Distribution struct {
	ID                   string          `yaml:"id"`
	Formats              []string        `yaml:"formats"`
	IncludeBaseDirectory *bool           `yaml:"includeBaseDirectory"`
	FileSets             []FileSet       `yaml:"fileSets"`
	DependencySets       []DependencySet `yaml:"dependencySets"`
}

// Manifest is the per-module project metadata read from plugin.yaml.
type Manifest struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	GroupID     string `yaml:"groupId"`
	ArtifactID  string `yaml:"artifactId"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`

	Properties      map[string]string `yaml:"properties"`
	SCM             *SCM              `yaml:"scm"`
	Licenses        []License         `yaml:"licenses"`
	Organization    *Organization     `yaml:"organization"`
	IssueManagement *IssueManagement  `yaml:"issueManagement"`
	Developers      []Developer       `yaml:"developers"`
	Distribution    *Distribution     `yaml:"distribution"`
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	return &m, nil
}

// Property returns a manifest property value, empty when absent.
func (m *Manifest) Property(key string) string {
	if m.Properties == nil {
		return ""
	}
	return m.Properties[key]
}

// RegistrationName resolves the plugin registration name. The first
// non-blank value wins: the explicit override, the "registrationName"
// manifest property, the artifact id. Blank inputs fall through silently.
func (m *Manifest) RegistrationName(explicit string) string {
	return firstNonBlank(explicit, m.Property("registrationName"), m.ArtifactID)
}

// APIVersion resolves the API version the plugin targets: the explicit
// override, the "apiVersion" manifest property, the module version.
func (m *Manifest) APIVersion(explicit string) string {
	return firstNonBlank(explicit, m.Property("apiVersion"), m.Version)
}

// Authors renders the declared developers of this manifest, one per line,
// formatted as "Name (Organization) <Email>" with organization and email
// omitted when blank. Developers without a name are skipped. Developers are
// never inherited from anywhere else.
func (m *Manifest) Authors() string {
	var lines []string
	for _, dev := range m.Developers {
		if strings.TrimSpace(dev.Name) == "" {
			continue
		}
		var b strings.Builder
		b.WriteString(dev.Name)
		if strings.TrimSpace(dev.Organization) != "" {
			b.WriteString(" (")
			b.WriteString(dev.Organization)
			b.WriteString(")")
		}
		if strings.TrimSpace(dev.Email) != "" {
			b.WriteString(" <")
			b.WriteString(dev.Email)
			b.WriteString(">")
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// LicenseString renders the first declared license as "Name - URL",
// dropping whichever part is blank. Empty when no license is usable.
func (m *Manifest) LicenseString() string {
	if len(m.Licenses) == 0 {
		return ""
	}
	lic := m.Licenses[0]
	var b strings.Builder
	if strings.TrimSpace(lic.Name) != "" {
		b.WriteString(lic.Name)
	}
	if strings.TrimSpace(lic.URL) != "" {
		if b.Len() > 0 {
			b.WriteString(" - ")
		}
		b.WriteString(lic.URL)
	}
	return b.String()
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
