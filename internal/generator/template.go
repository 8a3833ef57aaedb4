package generator

import "text/template"

// View models feeding the registration template. All string fields are
// escaped before rendering; the template inserts them verbatim.

type methodView struct {
	Name       string
	ArgTypes   []string
	ReturnType string
}

type entryPointView struct {
	Name       string
	PluginName string
	Methods    []methodView
}

type metadataEntry struct {
	Key   string
	Value string
}

type registrationView struct {
	PackageName string
	RuntimePkg  string
	TypeName    string
	PluginName  string
	Version     string
	EntryPoints []entryPointView
	Metadata    []metadataEntry
}

var registrationTemplate = template.Must(template.New("registration").Parse(`// Code generated by plugen. DO NOT EDIT.

package {{.PackageName}}

import (
	"{{.RuntimePkg}}"
)

// {{.TypeName}} exposes this plugin's identity, entry points and project
// metadata to the host framework's discovery mechanism.
type {{.TypeName}} struct {
	pluginName  string
	version     string
	entryPoints map[string]plugen.EntryPoint
	metadata    map[string]string
}

var _ plugen.Registration = (*{{.TypeName}})(nil)

// New{{.TypeName}} builds the registration. The result is immutable.
func New{{.TypeName}}() *{{.TypeName}} {
	r := &{{.TypeName}}{
		pluginName:  "{{.PluginName}}",
		version:     "{{.Version}}",
		entryPoints: make(map[string]plugen.EntryPoint),
		metadata:    make(map[string]string),
	}
{{range .EntryPoints}}
	r.entryPoints["{{.Name}}"] = plugen.EntryPoint{
		Name:       "{{.Name}}",
		PluginName: "{{.PluginName}}",
		Methods: map[string]plugen.Method{
{{- range .Methods}}
			"{{.Name}}": {
				Name:       "{{.Name}}",
				ArgTypes:   []string{ {{- range $i, $t := .ArgTypes}}{{if $i}}, {{end}}"{{$t}}"{{end -}} },
				ReturnType: "{{.ReturnType}}",
			},
{{- end}}
		},
	}
{{end}}
{{- range .Metadata}}
	r.metadata["{{.Key}}"] = "{{.Value}}"
{{- end}}

	return r
}

// PluginName returns the resolved registration name.
func (r *{{.TypeName}}) PluginName() string { return r.pluginName }

// Version returns the API version the plugin targets.
func (r *{{.TypeName}}) Version() string { return r.version }

// EntryPoints returns the discovered entry points keyed by declared name.
func (r *{{.TypeName}}) EntryPoints() map[string]plugen.EntryPoint { return r.entryPoints }

// Metadata returns the project metadata captured at generation time.
func (r *{{.TypeName}}) Metadata() map[string]string { return r.metadata }
`))
