package derive

import (
	"bytes"
	"fmt"
	"go/format"
	"path"
	"strconv"
	"text/template"
)

// File is one generated source file.
type File struct {
	Path          string
	Package       string
	PkgPath       string
	RuntimeImport string
	Enums         []*Enum
}

// Header is the first line of every generated file.
const Header = "// " + generatedMarker

type renderData struct {
	*File
	Qual       string
	NeedsNames bool
}

// Imports lists the import paths of the file, with an empty entry
// separating the standard library from the runtime.
func (d renderData) Imports() []string {
	var out []string
	if d.NeedsNames {
		out = append(out, "fmt", "strconv")
	}
	if d.Qual != "" {
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, d.RuntimeImport)
	}
	return out
}

var funcs = template.FuncMap{
	"quote": strconv.Quote,
}

var fileTmpl = template.Must(template.New("file").Funcs(funcs).Parse(`{{.Header}}

package {{.Package}}
{{- if .Imports}}

import (
{{- range .Imports}}
	{{if .}}{{quote .}}{{end}}
{{- end}}
)
{{- end}}
{{range .Enums}}{{template "enum" $.With .}}{{end}}`))

var _ = template.Must(fileTmpl.New("enum").Parse(`
func _() {
	// An "invalid array index" compiler error signifies that the constant values have changed.
	// Re-run enumtablegen to regenerate them.
	var {{.E.GuardVar}} [1]struct{}
{{- range .E.Variants}}
	_ = {{$.E.GuardVar}}[{{.Name}}-{{.Guard}}]
{{- end}}
}

var _{{.E.Name}}Variants = [...]{{.E.Name}}{
{{- range .E.Variants}}
	{{.Name}},
{{- end}}
}

// {{.E.Name}}Count is the number of variants of {{.E.Name}}.
const {{.E.Name}}Count = len(_{{.E.Name}}Variants)

// Variants returns every variant of {{.E.Name}} in ordinal order.
func ({{.E.Name}}) Variants() []{{.E.Name}} {
	out := _{{.E.Name}}Variants
	return out[:]
}

func _{{.E.Name}}Index({{.E.Receiver}} {{.E.Name}}) int {
	switch {{.E.Receiver}} {
{{- range $i, $v := .E.Variants}}
	case {{$v.Name}}:
		return {{$i}}
{{- end}}
	}
	return -1
}
{{- if .E.Index}}

// VariantIndex returns the position of {{.E.Receiver}} in Variants, or -1.
func ({{.E.Receiver}} {{.E.Name}}) VariantIndex() int {
	return _{{.E.Name}}Index({{.E.Receiver}})
}
{{- end}}
{{- if .E.Names}}

var _{{.E.Name}}Names = [...]string{
{{- range .E.Variants}}
	{{quote .Label}},
{{- end}}
}

func ({{.E.Receiver}} {{.E.Name}}) String() string {
	if i := _{{.E.Name}}Index({{.E.Receiver}}); i >= 0 {
		return _{{.E.Name}}Names[i]
	}
{{- if .E.Signed}}
	return "{{.E.Name}}(" + strconv.FormatInt(int64({{.E.Receiver}}), 10) + ")"
{{- else}}
	return "{{.E.Name}}(" + strconv.FormatUint(uint64({{.E.Receiver}}), 10) + ")"
{{- end}}
}

// MarshalText implements encoding.TextMarshaler.
func ({{.E.Receiver}} {{.E.Name}}) MarshalText() ([]byte, error) {
	if i := _{{.E.Name}}Index({{.E.Receiver}}); i >= 0 {
		return []byte(_{{.E.Name}}Names[i]), nil
	}
	return nil, fmt.Errorf("%s is not a {{.E.Name}} variant", {{.E.Receiver}})
}

// UnmarshalText implements encoding.TextUnmarshaler.
func ({{.E.Receiver}} *{{.E.Name}}) UnmarshalText(text []byte) error {
	for i, name := range _{{.E.Name}}Names {
		if name == string(text) {
			*{{.E.Receiver}} = _{{.E.Name}}Variants[i]
			return nil
		}
	}
	return fmt.Errorf("unknown {{.E.Name}} %q", text)
}
{{- end}}

var _ = {{.Qual}}Count[{{.E.Name}}]
`))

type enumData struct {
	E    *Enum
	Qual string
}

func (d renderData) With(e *Enum) enumData { return enumData{E: e, Qual: d.Qual} }

func (d renderData) Header() string { return Header }

// Render produces the gofmt-ed source of f.
func Render(f *File) ([]byte, error) {
	if len(f.Enums) == 0 {
		return nil, fmt.Errorf("%s: nothing to render", f.Path)
	}
	d := renderData{File: f}
	if f.RuntimeImport == "" {
		f.RuntimeImport = DefaultRuntimeImport
	}
	if f.PkgPath != f.RuntimeImport {
		d.Qual = path.Base(f.RuntimeImport) + "."
	}
	for _, e := range f.Enums {
		if e.Names {
			d.NeedsNames = true
		}
	}
	var buf bytes.Buffer
	if err := fileTmpl.Execute(&buf, d); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", f.Path, err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), fmt.Errorf("failed to format %s: %w", f.Path, err)
	}
	return src, nil
}
