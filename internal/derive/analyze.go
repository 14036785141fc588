package derive

import (
	"fmt"
	"go/constant"
	"go/token"
	"go/types"
	"slices"
	"strings"

	"fortio.org/safecast"

	"enumtable"
	"enumtable/internal/diag"
	"enumtable/internal/layout"
)

// Analyze collects the variants of typeName in pkg. It returns nil when an
// error was reported.
func Analyze(pkg *Package, typeName string, opts Options, rep diag.Reporter) *Enum {
	obj := pkg.Types.Scope().Lookup(typeName)
	if obj == nil {
		diag.ReportError(rep, diag.DeriveTypeNotFound, token.Position{Filename: pkg.Dir},
			fmt.Sprintf("type %s not found in package %s", typeName, pkg.PkgPath)).Emit()
		return nil
	}
	pos := pkg.Fset.Position(obj.Pos())
	tn, ok := obj.(*types.TypeName)
	if !ok {
		diag.ReportError(rep, diag.DeriveTypeNotFound, pos,
			fmt.Sprintf("%s is a %s, not a type", typeName, objectKind(obj))).Emit()
		return nil
	}
	if tn.IsAlias() {
		diag.ReportError(rep, diag.DeriveAliasType, pos,
			fmt.Sprintf("%s is an alias of %s; derive the defined type instead", typeName, types.Unalias(tn.Type()))).Emit()
		return nil
	}
	named, ok := tn.Type().(*types.Named)
	if !ok {
		diag.ReportError(rep, diag.DeriveNotInteger, pos, fmt.Sprintf("%s is not a defined type", typeName)).Emit()
		return nil
	}
	if named.TypeParams().Len() > 0 {
		diag.ReportError(rep, diag.DeriveGeneric, pos, fmt.Sprintf("%s has type parameters", typeName)).Emit()
		return nil
	}
	basic, ok := named.Underlying().(*types.Basic)
	if !ok || basic.Info()&types.IsInteger == 0 {
		diag.ReportError(rep, diag.DeriveNotInteger, pos,
			fmt.Sprintf("%s has underlying type %s; enumerations must be declared over an integer type", typeName, named.Underlying())).Emit()
		return nil
	}

	width := widthOf(named, opts.Target)
	if err := opts.Target.CheckWidth(width); err != nil {
		code := diag.DeriveUnsupportedWidth
		if width == 8 {
			code = diag.DeriveWideDiscriminant
		}
		diag.ReportError(rep, code, pos, fmt.Sprintf("%s: %v", typeName, err)).Emit()
		return nil
	}

	e := &Enum{
		Name:    typeName,
		PkgName: pkg.Name,
		PkgPath: pkg.PkgPath,
		Dir:     pkg.Dir,
		Pos:     pos,
		Width:   width,
		Signed:  basic.Info()&types.IsUnsigned == 0,
		Index:   opts.Index,
		Names:   opts.Names,
		Output:  opts.Output,
		Runtime: opts.RuntimeImport,
	}
	if !collectVariants(e, pkg, named, rep) {
		return nil
	}
	if len(e.Variants) == 0 {
		diag.ReportError(rep, diag.DeriveNoVariants, pos,
			fmt.Sprintf("%s has no constants; declare at least one constant of type %s", typeName, typeName)).Emit()
		return nil
	}
	sortVariants(e.Variants)
	if opts.Names {
		assignLabels(e, opts, rep)
	}
	e.Receiver = receiverName(e)
	e.GuardVar = freeName(e, "x", "y")
	if !checkCollisions(e, pkg, named, rep) {
		return nil
	}
	return e
}

func objectKind(obj types.Object) string {
	switch obj.(type) {
	case *types.Const:
		return "constant"
	case *types.Var:
		return "variable"
	case *types.Func:
		return "function"
	default:
		return "declaration"
	}
}

func widthOf(t types.Type, target layout.Target) int {
	sizes := types.SizesFor("gc", target.Arch)
	if sizes == nil {
		sizes = types.SizesFor("gc", "amd64")
	}
	return safecast.MustConv[int](sizes.Sizeof(t))
}

// collectVariants gathers the package-level constants of type named in
// declaration order, dropping aliases.
func collectVariants(e *Enum, pkg *Package, named *types.Named, rep diag.Reporter) bool {
	scope := pkg.Types.Scope()
	type decl struct {
		c   *types.Const
		pos token.Position
	}
	var decls []decl
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok || name == "_" || !types.Identical(c.Type(), named) {
			continue
		}
		decls = append(decls, decl{c: c, pos: pkg.Fset.Position(c.Pos())})
	}
	slices.SortFunc(decls, func(a, b decl) int {
		if a.pos.Filename != b.pos.Filename {
			return strings.Compare(a.pos.Filename, b.pos.Filename)
		}
		return a.pos.Offset - b.pos.Offset
	})

	ok := true
	seen := make(map[uint64]int, len(decls))
	for _, d := range decls {
		raw, exact := rawBits(d.c.Val(), e.Signed)
		if !exact {
			diag.ReportError(rep, diag.DeriveValueOverflow, d.pos,
				fmt.Sprintf("%s = %s does not fit a 64-bit discriminant", d.c.Name(), d.c.Val().ExactString())).Emit()
			ok = false
			continue
		}
		raw = enumtable.Truncate(raw, e.Width)
		if first, dup := seen[raw]; dup {
			kept := e.Variants[first]
			e.Aliases = append(e.Aliases, Alias{
				Name:  d.c.Name(),
				Of:    kept.Name,
				Value: d.c.Val().ExactString(),
				Pos:   d.pos,
				OfPos: kept.Pos,
			})
			diag.ReportWarning(rep, diag.VarDuplicate, d.pos,
				fmt.Sprintf("%s has the same value as %s (%s); only %s is a variant", d.c.Name(), kept.Name, d.c.Val().ExactString(), kept.Name)).
				WithNote(kept.Pos, kept.Name+" declared here").
				Emit()
			continue
		}
		seen[raw] = len(e.Variants)
		e.Variants = append(e.Variants, Variant{
			Name:    d.c.Name(),
			Value:   d.c.Val(),
			Raw:     raw,
			Ordinal: raw,
			Pos:     d.pos,
		})
	}
	return ok
}

// rawBits returns the two's complement bit pattern of an integer constant.
func rawBits(v constant.Value, signed bool) (uint64, bool) {
	v = constant.ToInt(v)
	if v.Kind() != constant.Int {
		return 0, false
	}
	if signed {
		i, exact := constant.Int64Val(v)
		return uint64(i), exact
	}
	return constant.Uint64Val(v)
}

// sortVariants orders variants by ordinal. The sort is stable so that the
// result does not depend on anything but the ordinals.
func sortVariants(vs []Variant) {
	slices.SortStableFunc(vs, func(a, b Variant) int {
		switch {
		case a.Ordinal < b.Ordinal:
			return -1
		case a.Ordinal > b.Ordinal:
			return 1
		}
		return 0
	})
}

func assignLabels(e *Enum, opts Options, rep diag.Reporter) {
	taken := make(map[string]string, len(e.Variants))
	for i := range e.Variants {
		v := &e.Variants[i]
		label := strings.TrimPrefix(v.Name, opts.TrimPrefix)
		if label == "" {
			diag.ReportWarning(rep, diag.VarEmptyLabel, v.Pos,
				fmt.Sprintf("trimming %q from %s leaves an empty name; using %s", opts.TrimPrefix, v.Name, v.Name)).Emit()
			label = v.Name
		}
		label = opts.NameCase.apply(label)
		if prev, clash := taken[label]; clash {
			diag.ReportWarning(rep, diag.VarLabelClash, v.Pos,
				fmt.Sprintf("%s and %s both serialize as %q; using %q for %s", prev, v.Name, label, v.Name, v.Name)).Emit()
			label = v.Name
		}
		taken[label] = v.Name
		v.Label = label
	}
}

// receiverName picks a receiver that does not shadow any variant.
func receiverName(e *Enum) string {
	return freeName(e, "v", "e", "k")
}

// freeName returns the first candidate that is not a variant name.
func freeName(e *Enum, cands ...string) string {
	names := make(map[string]bool, len(e.Variants))
	for _, v := range e.Variants {
		names[v.Name] = true
	}
	for _, c := range cands {
		if !names[c] {
			return c
		}
	}
	r := cands[0]
	for names[r] {
		r += "_"
	}
	return r
}

// generatedIdents lists the package-level identifiers and methods the
// rendered file declares for e.
func generatedIdents(e *Enum) (decls, methods []string) {
	decls = []string{"_" + e.Name + "Variants", "_" + e.Name + "Index", e.Name + "Count"}
	methods = []string{"Variants"}
	if e.Index {
		methods = append(methods, "VariantIndex")
	}
	if e.Names {
		decls = append(decls, "_"+e.Name+"Names")
		methods = append(methods, "String", "MarshalText", "UnmarshalText")
	}
	return decls, methods
}

func checkCollisions(e *Enum, pkg *Package, named *types.Named, rep diag.Reporter) bool {
	ok := true
	decls, methods := generatedIdents(e)
	for _, name := range decls {
		obj := pkg.Types.Scope().Lookup(name)
		if obj == nil {
			continue
		}
		pos := pkg.Fset.Position(obj.Pos())
		if pkg.IsGenerated(pos.Filename) {
			continue
		}
		diag.ReportError(rep, diag.DeriveNameCollision, pos,
			fmt.Sprintf("%s is declared here but is generated for %s", name, e.Name)).Emit()
		ok = false
	}
	for _, name := range methods {
		obj, _, _ := types.LookupFieldOrMethod(named, true, pkg.Types, name)
		if obj == nil {
			continue
		}
		pos := pkg.Fset.Position(obj.Pos())
		if pkg.IsGenerated(pos.Filename) {
			continue
		}
		diag.ReportError(rep, diag.DeriveNameCollision, pos,
			fmt.Sprintf("%s.%s is declared here but is generated; drop the flag that generates it or remove the method", e.Name, name)).Emit()
		ok = false
	}
	return ok
}
