// Package project finds and loads enumtable.toml, the manifest that lists
// the enumerations of a module and the options they are generated with.
package project

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"enumtable/internal/derive"
	"enumtable/internal/diag"
	"enumtable/internal/layout"
)

// ManifestName is the file name searched for by Find.
const ManifestName = "enumtable.toml"

// Manifest is a loaded enumtable.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the manifest layout.
type Config struct {
	Generate GenerateConfig `toml:"generate"`
	Types    []TypeSpec     `toml:"types"`
}

// GenerateConfig holds defaults shared by every [[types]] entry.
type GenerateConfig struct {
	Runtime    string   `toml:"runtime"`
	Output     string   `toml:"output"`
	Index      *bool    `toml:"index"`
	Names      bool     `toml:"names"`
	TrimPrefix string   `toml:"trim_prefix"`
	NameCase   string   `toml:"name_case"`
	Target     string   `toml:"target"`
	Jobs       int      `toml:"jobs"`
	Tags       []string `toml:"tags"`
}

// TypeSpec selects enumerations of one package. Unset fields inherit
// from [generate].
type TypeSpec struct {
	Package    string   `toml:"package"`
	Types      []string `toml:"types"`
	Output     string   `toml:"output"`
	Index      *bool    `toml:"index"`
	Names      *bool    `toml:"names"`
	TrimPrefix *string  `toml:"trim_prefix"`
	NameCase   string   `toml:"name_case"`
}

// Find walks up from startDir looking for enumtable.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the manifest governing startDir. ok is false
// when there is none.
func Discover(startDir string, rep diag.Reporter) (m *Manifest, ok bool, err error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err = Load(path, rep)
	return m, true, err
}

// Load parses the manifest at path. Syntax errors are returned; semantic
// problems are reported to rep and make Load return an error as well.
func Load(path string, rep diag.Reporter) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	pos := token.Position{Filename: path}
	for _, key := range meta.Undecoded() {
		diag.ReportWarning(rep, diag.ProjUnknownKey, pos, fmt.Sprintf("unknown key %q", key.String())).Emit()
	}
	m := &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}
	if problems := m.validate(); len(problems) > 0 {
		for _, p := range problems {
			diag.ReportError(rep, diag.ProjManifestInvalid, pos, p).Emit()
		}
		return nil, fmt.Errorf("%s: %s", path, problems[0])
	}
	return m, nil
}

func (m *Manifest) validate() []string {
	var problems []string
	g := m.Config.Generate
	if _, err := derive.ParseNameCase(g.NameCase); err != nil {
		problems = append(problems, "[generate]: "+err.Error())
	}
	if _, err := layout.Lookup(g.Target); err != nil {
		problems = append(problems, "[generate]: "+err.Error())
	}
	if g.Jobs < 0 {
		problems = append(problems, fmt.Sprintf("[generate].jobs must not be negative, got %d", g.Jobs))
	}
	if len(m.Config.Types) == 0 {
		problems = append(problems, "missing [[types]]")
	}
	for i, t := range m.Config.Types {
		where := fmt.Sprintf("[[types]] #%d", i+1)
		if strings.TrimSpace(t.Package) == "" {
			problems = append(problems, where+": missing package")
		}
		if len(t.Types) == 0 {
			problems = append(problems, where+": missing types")
		}
		for _, name := range t.Types {
			if !token.IsIdentifier(name) {
				problems = append(problems, fmt.Sprintf("%s: %q is not a type name", where, name))
			}
		}
		if _, err := derive.ParseNameCase(t.NameCase); err != nil {
			problems = append(problems, where+": "+err.Error())
		}
	}
	return problems
}

// Options returns the derivation options of the generate section applied
// over base.
func (m *Manifest) Options(base derive.Options) (derive.Options, error) {
	g := m.Config.Generate
	opts := base
	if g.Runtime != "" {
		opts.RuntimeImport = g.Runtime
	}
	if g.Output != "" {
		opts.Output = g.Output
	}
	if g.Index != nil {
		opts.Index = *g.Index
	}
	if g.Names {
		opts.Names = true
	}
	if g.TrimPrefix != "" {
		opts.TrimPrefix = g.TrimPrefix
	}
	if g.NameCase != "" {
		c, err := derive.ParseNameCase(g.NameCase)
		if err != nil {
			return opts, err
		}
		opts.NameCase = c
	}
	if g.Target != "" {
		t, err := layout.Lookup(g.Target)
		if err != nil {
			return opts, err
		}
		opts.Target = t
	}
	return opts, nil
}

// Apply overlays the per-entry settings of t on opts.
func (t TypeSpec) Apply(opts derive.Options) (derive.Options, error) {
	if t.Output != "" {
		opts.Output = t.Output
	}
	if t.Index != nil {
		opts.Index = *t.Index
	}
	if t.Names != nil {
		opts.Names = *t.Names
	}
	if t.TrimPrefix != nil {
		opts.TrimPrefix = *t.TrimPrefix
	}
	if t.NameCase != "" {
		c, err := derive.ParseNameCase(t.NameCase)
		if err != nil {
			return opts, err
		}
		opts.NameCase = c
	}
	return opts, nil
}

// Template is the manifest written by `enumtablegen init`.
func Template(pkg string, types []string) string {
	var b strings.Builder
	b.WriteString("[generate]\n")
	fmt.Fprintf(&b, "runtime = %q\n", derive.DefaultRuntimeImport)
	b.WriteString("index = true\n")
	b.WriteString("names = false\n")
	b.WriteString("name_case = \"as-is\"\n")
	b.WriteString("\n[[types]]\n")
	fmt.Fprintf(&b, "package = %q\n", pkg)
	quoted := make([]string, len(types))
	for i, t := range types {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	fmt.Fprintf(&b, "types = [%s]\n", strings.Join(quoted, ", "))
	return b.String()
}
