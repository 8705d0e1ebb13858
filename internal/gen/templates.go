package gen

import (
	"strings"
	"text/template"
)

// templateData holds everything the templates render.
type templateData struct {
	PackageName string
	Api         string
	Version     string
	Profile     string
	Extensions  []string
	Imports     []string
	Constants   []constantData
	Functions   []functionData
}

// constantData is one emitted constant.
type constantData struct {
	Name  string
	Value string
	Group string
}

// functionData is one emitted command.
type functionData struct {
	// Name is the exported Go name.
	Name string
	// Symbol is the name resolved through getProcAddress.
	Symbol string
	// Var holds the registered function.
	Var    string
	Params []paramData
	// Result is the Go result type, empty for none.
	Result string
}

type paramData struct {
	Name string
	Type string
}

// Signature renders "(a T, b U) R".
func (f functionData) Signature() string {
	params := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		params = append(params, p.Name+" "+p.Type)
	}

	sig := "(" + strings.Join(params, ", ") + ")"
	if f.Result != "" {
		sig += " " + f.Result
	}

	return sig
}

// Args renders the call arguments "a, b".
func (f functionData) Args() string {
	names := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		names = append(names, p.Name)
	}

	return strings.Join(names, ", ")
}

func (f functionData) usesUnsafe() bool {
	if strings.Contains(f.Result, unsafePointer) {
		return true
	}

	for _, p := range f.Params {
		if strings.Contains(p.Type, unsafePointer) {
			return true
		}
	}

	return false
}

const header = `// Code generated by binding-generator. DO NOT EDIT.

`

var docTemplate = template.Must(template.New("doc").Parse(header + `// Package {{.PackageName}} provides Go bindings for {{.Api}} {{.Version}} ({{.Profile}} profile).
{{- if .Extensions}}
//
// Extensions:
{{- range .Extensions}}
//   - {{.}}
{{- end}}
{{- end}}
//
// Call Init with the platform's proc address loader before using any
// function.
package {{.PackageName}}
`))

var constantsTemplate = template.Must(template.New("constants").Parse(header + `package {{.PackageName}}
{{if .Constants}}
const (
{{- range .Constants}}
	{{.Name}} = {{.Value}}{{if .Group}} // {{.Group}}{{end}}
{{- end}}
)
{{end}}`))

var functionsTemplate = template.Must(template.New("functions").Parse(header + `package {{.PackageName}}

import (
{{- range .Imports}}
	"{{.}}"
{{- end}}
)

// ErrMissingProcs is returned by Init when the loader cannot resolve some functions.
var ErrMissingProcs = errors.New("missing procedures")
{{if .Functions}}
var (
{{- range .Functions}}
	{{.Var}} func{{.Signature}}
{{- end}}
)
{{end}}
{{- range .Functions}}
// {{.Name}} calls {{.Symbol}}.
func {{.Name}}{{.Signature}} {
	{{if .Result}}return {{end}}{{.Var}}({{.Args}})
}
{{end}}
var procs = []struct {
	name string
	fn   any
}{
{{- range .Functions}}
	{"{{.Symbol}}", &{{.Var}}},
{{- end}}
}

// Init resolves every function through getProcAddress. Functions the loader
// cannot resolve stay unset and are listed in the returned error.
func Init(getProcAddress func(name string) uintptr) error {
	var missing []string

	for _, p := range procs {
		addr := getProcAddress(p.name)
		if addr == 0 {
			missing = append(missing, p.name)
			continue
		}

		purego.RegisterFunc(p.fn, addr)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingProcs, strings.Join(missing, ", "))
	}

	return nil
}
`))
