package derive

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/tools/go/packages"

	"enumtable/internal/diag"
)

// Package is the part of a loaded package the analysis reads.
type Package struct {
	Name    string
	PkgPath string
	Dir     string
	Fset    *token.FileSet
	Syntax  []*ast.File
	Types   *types.Package

	generated map[string]bool
}

// NewPackage wraps type-checked syntax. Files whose header marks them as
// produced by enumtablegen are remembered so their declarations do not
// count as collisions.
func NewPackage(fset *token.FileSet, files []*ast.File, pkg *types.Package) *Package {
	p := &Package{
		Name:      pkg.Name(),
		PkgPath:   pkg.Path(),
		Fset:      fset,
		Syntax:    files,
		Types:     pkg,
		generated: make(map[string]bool),
	}
	for _, f := range files {
		name := fset.Position(f.Package).Filename
		if p.Dir == "" && name != "" {
			p.Dir = filepath.Dir(name)
		}
		if isOwnOutput(f) {
			p.generated[name] = true
		}
	}
	return p
}

// IsGenerated reports whether filename was written by enumtablegen.
func (p *Package) IsGenerated(filename string) bool {
	return p.generated[filename]
}

const generatedMarker = "Code generated by enumtablegen; DO NOT EDIT."

func isOwnOutput(f *ast.File) bool {
	if !ast.IsGenerated(f) {
		return false
	}
	for _, cg := range f.Comments {
		if cg.Pos() > f.Package {
			break
		}
		if strings.Contains(cg.Text(), generatedMarker) {
			return true
		}
	}
	return false
}

// LoadConfig describes which packages to load.
type LoadConfig struct {
	Dir      string
	Patterns []string
	Tags     []string
}

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
	packages.NeedTypes | packages.NeedTypesInfo | packages.NeedTypesSizes

// Load loads and type-checks the packages matching cfg.Patterns. Package
// errors are reported as diagnostics; errors inside enumtablegen output are
// skipped since that output is about to be replaced.
func Load(ctx context.Context, cfg LoadConfig, rep diag.Reporter) ([]*Package, error) {
	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	pcfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     cfg.Dir,
		Tests:   false,
	}
	if len(cfg.Tags) > 0 {
		pcfg.BuildFlags = []string{"-tags=" + strings.Join(cfg.Tags, ",")}
	}
	baseDir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve load directory: %w", err)
	}
	loaded, err := packages.Load(pcfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if len(loaded) == 0 {
		diag.ReportError(rep, diag.LoadNoPackages, token.Position{}, fmt.Sprintf("no packages match %s", strings.Join(patterns, " "))).Emit()
		return nil, nil
	}

	out := make([]*Package, 0, len(loaded))
	for _, lp := range loaded {
		if lp.Types == nil || lp.Fset == nil {
			reportPackageErrors(lp, nil, baseDir, rep)
			continue
		}
		p := NewPackage(lp.Fset, lp.Syntax, lp.Types)
		p.PkgPath = lp.PkgPath
		if len(lp.GoFiles) > 0 {
			p.Dir = filepath.Dir(lp.GoFiles[0])
		}
		reportPackageErrors(lp, p, baseDir, rep)
		out = append(out, p)
	}
	return out, nil
}

// reportPackageErrors reports lp's errors except those located only in
// enumtablegen output. Errors from the go command carry no position; their
// locations are read from the message instead.
func reportPackageErrors(lp *packages.Package, p *Package, baseDir string, rep diag.Reporter) {
	for _, e := range lp.Errors {
		pos := parsePos(e.Pos)
		refs := []token.Position{pos}
		if pos.Filename == "" {
			refs = msgPositions(e.Msg)
			if len(refs) > 0 {
				pos = refs[0]
			}
		}
		if p != nil && len(refs) > 0 && p.onlyGenerated(refs, baseDir) {
			continue
		}
		code := diag.LoadPackage
		if e.Kind == packages.TypeError {
			code = diag.LoadTypeErrors
		}
		diag.ReportError(rep, code, pos, fmt.Sprintf("%s: %s", lp.PkgPath, e.Msg)).Emit()
	}
}

var msgPosRE = regexp.MustCompile(`(?m)^\s*(\S.*?\.go:\d+(?::\d+)?): `)

// msgPositions returns the file positions that start lines of a go command
// error message, such as "./color_enumtable.go:5:9: undefined: x".
func msgPositions(msg string) []token.Position {
	var out []token.Position
	for _, m := range msgPosRE.FindAllStringSubmatch(msg, -1) {
		out = append(out, parsePos(m[1]))
	}
	return out
}

// onlyGenerated reports whether every position is inside a generated file.
// Relative names are resolved against the package directory and the
// directory the go command ran in.
func (p *Package) onlyGenerated(refs []token.Position, baseDir string) bool {
	for _, ref := range refs {
		name := ref.Filename
		if name == "" {
			return false
		}
		if filepath.IsAbs(name) {
			if !p.IsGenerated(filepath.Clean(name)) {
				return false
			}
			continue
		}
		if !p.IsGenerated(filepath.Join(p.Dir, name)) && !p.IsGenerated(filepath.Join(baseDir, name)) {
			return false
		}
	}
	return true
}

// parsePos splits a "file:line:col" position as printed by the go tool.
func parsePos(s string) token.Position {
	var pos token.Position
	if s == "" || s == "-" {
		return pos
	}
	parts := strings.Split(s, ":")
	// file names may contain ':' (Windows drive letters), so parse from the end
	nums := make([]int, 0, 2)
	for len(parts) > 1 && len(nums) < 2 {
		var n int
		if _, err := fmt.Sscanf(parts[len(parts)-1], "%d", &n); err != nil {
			break
		}
		nums = append([]int{n}, nums...)
		parts = parts[:len(parts)-1]
	}
	pos.Filename = strings.Join(parts, ":")
	if len(nums) > 0 {
		pos.Line = nums[0]
	}
	if len(nums) > 1 {
		pos.Column = nums[1]
	}
	return pos
}
