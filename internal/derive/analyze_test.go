package derive

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"slices"
	"testing"

	"enumtable/internal/diag"
	"enumtable/internal/layout"
)

type srcFile struct {
	name string
	src  string
}

// checkSources type-checks files as package "p". The sources must not import
// anything.
func checkSources(t *testing.T, files ...srcFile) *Package {
	t.Helper()
	fset := token.NewFileSet()
	var syntax []*ast.File
	for _, f := range files {
		af, err := parser.ParseFile(fset, f.name, f.src, parser.ParseComments)
		if err != nil {
			t.Fatalf("parse %s: %v", f.name, err)
		}
		syntax = append(syntax, af)
	}
	conf := types.Config{Sizes: types.SizesFor("gc", "amd64")}
	pkg, err := conf.Check("example.com/p", fset, syntax, nil)
	if err != nil {
		t.Fatalf("type check: %v", err)
	}
	p := NewPackage(fset, syntax, pkg)
	p.Dir = "/src/p"
	return p
}

func analyze(t *testing.T, src, typeName string, opts Options) (*Enum, *diag.Bag) {
	t.Helper()
	p := checkSources(t, srcFile{"p.go", src})
	bag := diag.NewBag(100)
	if opts.Target.Arch == "" {
		opts.Target, _ = layout.Lookup("amd64")
	}
	return Analyze(p, typeName, opts, diag.BagReporter{Bag: bag}), bag
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

const colorSrc = `package p

type Color uint8

const (
	Red   Color = 33
	Green Color = 11
	Blue  Color = 222
)
`

func TestAnalyzeOrdersByOrdinal(t *testing.T) {
	e, bag := analyze(t, colorSrc, "Color", DefaultOptions())
	if e == nil {
		t.Fatalf("Analyze returned nil: %v", codes(bag))
	}
	if got, want := e.VariantNames(), []string{"Green", "Red", "Blue"}; !slices.Equal(got, want) {
		t.Fatalf("variants = %v, want %v", got, want)
	}
	if e.Width != 1 || e.Signed {
		t.Fatalf("width=%d signed=%v, want 1 unsigned", e.Width, e.Signed)
	}
	if e.FileName() != "color_enumtable.go" {
		t.Fatalf("FileName = %q", e.FileName())
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codes(bag))
	}
}

func TestAnalyzeSignedUsesTwosComplement(t *testing.T) {
	src := `package p

type Op int16

const (
	OpNop   Op = 40
	OpLoad  Op = 3
	OpStore Op = -2
	OpAdd   Op = 17
	OpSub   Op = 16
	OpJump  Op = 1000
	OpHalt  Op = 0
)
`
	e, bag := analyze(t, src, "Op", DefaultOptions())
	if e == nil {
		t.Fatalf("Analyze returned nil: %v", codes(bag))
	}
	want := []string{"OpHalt", "OpLoad", "OpSub", "OpAdd", "OpNop", "OpJump", "OpStore"}
	if got := e.VariantNames(); !slices.Equal(got, want) {
		t.Fatalf("variants = %v, want %v", got, want)
	}
	last := e.Variants[len(e.Variants)-1]
	if last.Ordinal != 0xfffe {
		t.Fatalf("OpStore ordinal = %#x, want 0xfffe", last.Ordinal)
	}
	if last.Guard() != "(-2)" {
		t.Fatalf("OpStore guard = %q", last.Guard())
	}
}

func TestAnalyzeDropsAliases(t *testing.T) {
	src := `package p

type Level int

const (
	Low Level = iota
	High
	Default = Low
	_       Level = 7
)
`
	e, bag := analyze(t, src, "Level", DefaultOptions())
	if e == nil {
		t.Fatalf("Analyze returned nil: %v", codes(bag))
	}
	if got := e.VariantNames(); !slices.Equal(got, []string{"Low", "High"}) {
		t.Fatalf("variants = %v", got)
	}
	if len(e.Aliases) != 1 || e.Aliases[0].Name != "Default" || e.Aliases[0].Of != "Low" {
		t.Fatalf("aliases = %+v", e.Aliases)
	}
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.VarDuplicate || items[0].Severity != diag.SevWarning {
		t.Fatalf("diagnostics = %v", codes(bag))
	}
	if len(items[0].Notes) != 1 || items[0].Notes[0].Pos.Line != 6 {
		t.Fatalf("note = %+v, want one pointing at Low", items[0].Notes)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		typeName string
		arch     string
		want     diag.Code
	}{
		{
			name:     "missing type",
			src:      "package p\n",
			typeName: "Color",
			want:     diag.DeriveTypeNotFound,
		},
		{
			name:     "not a type",
			src:      "package p\n\nconst Color = 1\n",
			typeName: "Color",
			want:     diag.DeriveTypeNotFound,
		},
		{
			name:     "string enum",
			src:      "package p\n\ntype Mode string\n\nconst A Mode = \"a\"\n",
			typeName: "Mode",
			want:     diag.DeriveNotInteger,
		},
		{
			name:     "alias",
			src:      "package p\n\ntype Mode = int\n",
			typeName: "Mode",
			want:     diag.DeriveAliasType,
		},
		{
			name:     "generic",
			src:      "package p\n\ntype Mode[T any] int\n",
			typeName: "Mode",
			want:     diag.DeriveGeneric,
		},
		{
			name:     "no constants",
			src:      "package p\n\ntype Mode int\n",
			typeName: "Mode",
			want:     diag.DeriveNoVariants,
		},
		{
			name:     "wide on 32-bit",
			src:      "package p\n\ntype Mode uint64\n\nconst A Mode = 1\n",
			typeName: "Mode",
			arch:     "386",
			want:     diag.DeriveWideDiscriminant,
		},
		{
			name:     "hand-written String",
			src:      "package p\n\ntype Mode int\n\nconst A Mode = 1\n\nfunc (Mode) String() string { return \"\" }\n",
			typeName: "Mode",
			want:     diag.DeriveNameCollision,
		},
		{
			name:     "count constant taken",
			src:      "package p\n\ntype Mode int\n\nconst A Mode = 1\n\nconst ModeCount = 3\n",
			typeName: "Mode",
			want:     diag.DeriveNameCollision,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Names = true
			if tt.arch != "" {
				target, err := layout.Lookup(tt.arch)
				if err != nil {
					t.Fatalf("Lookup(%q): %v", tt.arch, err)
				}
				opts.Target = target
			}
			e, bag := analyze(t, tt.src, tt.typeName, opts)
			if e != nil {
				t.Fatalf("Analyze succeeded, want %v", tt.want)
			}
			if !bag.HasErrors() {
				t.Fatalf("no error reported")
			}
			if got := codes(bag); !slices.Contains(got, tt.want) {
				t.Fatalf("codes = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnalyzeLabels(t *testing.T) {
	src := `package p

type State uint8

const (
	StateIdle    State = 2
	StateRunning State = 1
	StateX       State = 3
)
`
	opts := DefaultOptions()
	opts.Names = true
	opts.TrimPrefix = "State"
	opts.NameCase = CaseLower
	e, bag := analyze(t, src, "State", opts)
	if e == nil {
		t.Fatalf("Analyze returned nil: %v", codes(bag))
	}
	var labels []string
	for _, v := range e.Variants {
		labels = append(labels, v.Label)
	}
	if want := []string{"running", "idle", "x"}; !slices.Equal(labels, want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codes(bag))
	}
}

func TestAnalyzeLabelFallbacks(t *testing.T) {
	src := `package p

type Kind uint8

const (
	Kind_  Kind = 1
	KindA  Kind = 2
	Kinda  Kind = 3
)
`
	opts := DefaultOptions()
	opts.Names = true
	opts.TrimPrefix = "Kind"
	opts.NameCase = CaseLower
	e, bag := analyze(t, src, "Kind", opts)
	if e == nil {
		t.Fatalf("Analyze returned nil: %v", codes(bag))
	}
	var labels []string
	for _, v := range e.Variants {
		labels = append(labels, v.Label)
	}
	// "Kind_" trims to "_"; "Kinda" clashes with "KindA" once lower-cased.
	if want := []string{"_", "a", "Kinda"}; !slices.Equal(labels, want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
	if got := codes(bag); !slices.Equal(got, []diag.Code{diag.VarLabelClash}) {
		t.Fatalf("codes = %v", got)
	}
}

func TestAnalyzeEmptyLabel(t *testing.T) {
	src := "package p\n\ntype Unit uint8\n\nconst (\n\tUnitOne Unit = 1\n\tUnitTwo Unit = 2\n)\n"
	opts := DefaultOptions()
	opts.Names = true
	opts.TrimPrefix = "UnitOne"
	e, bag := analyze(t, src, "Unit", opts)
	if e == nil {
		t.Fatalf("Analyze returned nil: %v", codes(bag))
	}
	if e.Variants[0].Label != "UnitOne" || e.Variants[1].Label != "UnitTwo" {
		t.Fatalf("labels = %q, %q", e.Variants[0].Label, e.Variants[1].Label)
	}
	if got := codes(bag); !slices.Equal(got, []diag.Code{diag.VarEmptyLabel}) {
		t.Fatalf("codes = %v", got)
	}
}

func TestReceiverAvoidsVariantNames(t *testing.T) {
	src := "package p\n\ntype L uint8\n\nconst (\n\tv L = 1\n\te L = 2\n\tx L = 3\n)\n"
	e, bag := analyze(t, src, "L", DefaultOptions())
	if e == nil {
		t.Fatalf("Analyze returned nil: %v", codes(bag))
	}
	if e.Receiver != "k" {
		t.Fatalf("Receiver = %q, want k", e.Receiver)
	}
	if e.GuardVar != "y" {
		t.Fatalf("GuardVar = %q, want y", e.GuardVar)
	}
}
