package fuzztests

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"enumtable/internal/derive"
	"enumtable/internal/diag"
)

func FuzzAnalyzeOrdinals(f *testing.F) {
	f.Add(int8(33), int8(11), int8(-1))
	f.Add(int8(0), int8(0), int8(0))
	f.Add(int8(-128), int8(127), int8(-1))
	f.Fuzz(func(t *testing.T, a, b, c int8) {
		src := fmt.Sprintf("package p\n\ntype T int8\n\nconst (\n\tA T = %d\n\tB T = %d\n\tC T = %d\n)\n", a, b, c)
		fset := token.NewFileSet()
		file, err := parser.ParseFile(fset, "/src/p/p.go", src, parser.ParseComments)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		conf := types.Config{}
		pkg, err := conf.Check("example.com/p", fset, []*ast.File{file}, nil)
		if err != nil {
			t.Fatalf("check: %v", err)
		}

		bag := diag.NewBag(16)
		opts := derive.DefaultOptions()
		opts.Names = true
		e := derive.Analyze(derive.NewPackage(fset, []*ast.File{file}, pkg), "T", opts, diag.BagReporter{Bag: bag})
		if e == nil {
			t.Fatalf("Analyze failed: %+v", bag.Items())
		}

		distinct := map[uint8]bool{uint8(a): true, uint8(b): true, uint8(c): true}
		if len(e.Variants) != len(distinct) || len(e.Variants)+len(e.Aliases) != 3 {
			t.Fatalf("%d variants and %d aliases for %d distinct values", len(e.Variants), len(e.Aliases), len(distinct))
		}
		for i, v := range e.Variants {
			if !distinct[uint8(v.Ordinal)] || v.Ordinal > 0xff {
				t.Fatalf("%s has ordinal %d", v.Name, v.Ordinal)
			}
			if i > 0 && e.Variants[i-1].Ordinal >= v.Ordinal {
				t.Fatalf("variants out of order: %s=%d before %s=%d", e.Variants[i-1].Name, e.Variants[i-1].Ordinal, v.Name, v.Ordinal)
			}
		}

		files := derive.Plan([]*derive.Enum{e}, opts, diag.BagReporter{Bag: bag})
		if len(files) != 1 {
			t.Fatalf("planned %d files", len(files))
		}
		out, err := derive.Render(files[0])
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if _, err := parser.ParseFile(token.NewFileSet(), files[0].Path, out, 0); err != nil {
			t.Fatalf("rendered source does not parse: %v\n%s", err, out)
		}
	})
}
