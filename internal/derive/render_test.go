package derive

import (
	"bytes"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"enumtable/internal/diag"
)

// countStub stands in for the runtime's Count when the rendered file is
// type-checked as part of the runtime package itself.
const countStub = "package p\n\nfunc Count[K interface{ Variants() []K }]() int {\n\tvar k K\n\treturn len(k.Variants())\n}\n"

func renderOne(t *testing.T, e *Enum, runtime string) []byte {
	t.Helper()
	src, err := Render(&File{
		Path:          "/src/p/" + e.FileName(),
		Package:       "p",
		PkgPath:       "example.com/p",
		RuntimeImport: runtime,
		Enums:         []*Enum{e},
	})
	if err != nil {
		t.Fatalf("Render: %v\n%s", err, src)
	}
	return src
}

func TestRenderTypeChecks(t *testing.T) {
	e, bag := analyze(t, colorSrc, "Color", DefaultOptions())
	if e == nil {
		t.Fatalf("Analyze returned nil: %v", codes(bag))
	}
	out := renderOne(t, e, "example.com/p")
	if !bytes.HasPrefix(out, []byte(Header+"\n")) {
		t.Fatalf("missing header:\n%s", out)
	}

	p := checkSources(t,
		srcFile{"p.go", colorSrc},
		srcFile{"stub.go", countStub},
		srcFile{"color_enumtable.go", string(out)},
	)
	if !p.IsGenerated("color_enumtable.go") {
		t.Fatalf("rendered file not recognised as generated")
	}

	// Regenerating over existing output must not see its own declarations
	// as collisions, and must be byte-identical.
	bag2 := diag.NewBag(10)
	e2 := Analyze(p, "Color", DefaultOptions(), diag.BagReporter{Bag: bag2})
	if e2 == nil {
		t.Fatalf("re-analysis failed: %v", codes(bag2))
	}
	if again := renderOne(t, e2, "example.com/p"); !bytes.Equal(out, again) {
		t.Fatalf("regenerated output differs:\n%s\n---\n%s", out, again)
	}
}

func TestRenderGuardsAndNames(t *testing.T) {
	src := `package p

type Op int16

const (
	OpLoad  Op = 3
	OpStore Op = -2
	OpHalt  Op = 0
)
`
	opts := DefaultOptions()
	opts.Names = true
	opts.TrimPrefix = "Op"
	e, bag := analyze(t, src, "Op", opts)
	if e == nil {
		t.Fatalf("Analyze returned nil: %v", codes(bag))
	}
	out := string(renderOne(t, e, DefaultRuntimeImport))
	if _, err := parser.ParseFile(token.NewFileSet(), "op_enumtable.go", out, 0); err != nil {
		t.Fatalf("rendered source does not parse: %v\n%s", err, out)
	}
	for _, want := range []string{
		`"enumtable"`,
		`"strconv"`,
		"_ = x[OpHalt-0]",
		"_ = x[OpStore-(-2)]",
		"var _OpVariants = [...]Op{\n\tOpHalt,\n\tOpLoad,\n\tOpStore,\n}",
		"var _OpNames = [...]string{\n\t\"Halt\",\n\t\"Load\",\n\t\"Store\",\n}",
		"const OpCount = len(_OpVariants)",
		"func (v Op) VariantIndex() int",
		"strconv.FormatInt(int64(v), 10)",
		"func (v *Op) UnmarshalText(text []byte) error",
		"var _ = enumtable.Count[Op]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q", want)
		}
	}
	if t.Failed() {
		t.Logf("output:\n%s", out)
	}
}

func TestRenderWithoutIndexOrNames(t *testing.T) {
	opts := DefaultOptions()
	opts.Index = false
	e, bag := analyze(t, colorSrc, "Color", opts)
	if e == nil {
		t.Fatalf("Analyze returned nil: %v", codes(bag))
	}
	out := string(renderOne(t, e, DefaultRuntimeImport))
	for _, absent := range []string{"VariantIndex", "String()", `"fmt"`, `"strconv"`} {
		if strings.Contains(out, absent) {
			t.Errorf("output unexpectedly contains %q", absent)
		}
	}
}

func TestPlan(t *testing.T) {
	a := &Enum{Name: "A", PkgName: "p", PkgPath: "example.com/p", Dir: "/src/p"}
	b := &Enum{Name: "B", PkgName: "p", PkgPath: "example.com/p", Dir: "/src/p"}
	c := &Enum{Name: "C", PkgName: "q", PkgPath: "example.com/q", Dir: "/src/q"}

	opts := DefaultOptions()
	files := Plan([]*Enum{a, b, c}, opts, nil)
	if len(files) != 3 || files[0].Path != filepath.Join("/src/p", "a_enumtable.go") {
		t.Fatalf("per-type plan = %+v", files)
	}

	opts.Output = "enums_gen.go"
	files = Plan([]*Enum{a, b, c}, opts, nil)
	if len(files) != 2 {
		t.Fatalf("shared plan has %d files, want 2", len(files))
	}
	if files[0].Path != filepath.Join("/src/p", "enums_gen.go") || len(files[0].Enums) != 2 {
		t.Fatalf("first file = %+v", files[0])
	}

	opts.Output = "/tmp/all.go"
	bag := diag.NewBag(10)
	if files := Plan([]*Enum{a, c}, opts, diag.BagReporter{Bag: bag}); files != nil {
		t.Fatalf("absolute output across packages planned %d files", len(files))
	}
	if got := codes(bag); len(got) != 1 || got[0] != diag.LoadMixedOutput {
		t.Fatalf("codes = %v", got)
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x_enumtable.go")
	src := []byte("package p\n")

	if st, err := Write(path, src, true); err != nil || st != Stale {
		t.Fatalf("check on missing file = %v, %v; want stale", st, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("check mode wrote the file")
	}
	if st, err := Write(path, src, false); err != nil || st != Written {
		t.Fatalf("first write = %v, %v", st, err)
	}
	if st, err := Write(path, src, false); err != nil || st != Unchanged {
		t.Fatalf("second write = %v, %v", st, err)
	}
	if st, err := Write(path, []byte("package q\n"), true); err != nil || st != Stale {
		t.Fatalf("check on changed content = %v, %v", st, err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "package p\n" {
		t.Fatalf("file content = %q", got)
	}
}
