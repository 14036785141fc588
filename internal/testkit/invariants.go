// Package testkit checks the structural invariants of enumerations and
// tables. Tests and fuzz harnesses call it after every operation that
// produces a table.
package testkit

import (
	"fmt"

	"enumtable"
)

// CheckVariants verifies the variant list of K:
// 1) it is non-empty
// 2) ordinals are strictly ascending, so no variant repeats
// 3) every ordinal converts back to its variant
// 4) VariantIndex, when implemented, agrees with the list and is -1 elsewhere
func CheckVariants[K enumtable.Enumable[K]]() error {
	var zero K
	vs := zero.Variants()
	if len(vs) == 0 {
		return fmt.Errorf("%T has no variants", zero)
	}
	for i, v := range vs {
		o := enumtable.Of(v)
		if i > 0 && o <= enumtable.Of(vs[i-1]) {
			return fmt.Errorf("variant %d (%v) has ordinal %d, not above %d", i, v, o, enumtable.Of(vs[i-1]))
		}
		if back := enumtable.Variant[K](o); back != v {
			return fmt.Errorf("ordinal %d converts back to %v, want %v", o, back, v)
		}
	}
	if _, ok := any(zero).(enumtable.Indexer); !ok {
		return nil
	}
	for i, v := range vs {
		if got := any(v).(enumtable.Indexer).VariantIndex(); got != i {
			return fmt.Errorf("%v.VariantIndex() = %d, want %d", v, got, i)
		}
	}
	// a value between two variants, if there is one, is not a variant
	for i := 1; i < len(vs); i++ {
		lo, hi := enumtable.Of(vs[i-1]), enumtable.Of(vs[i])
		if hi-lo < 2 {
			continue
		}
		probe := enumtable.Variant[K](lo + 1)
		if got := any(probe).(enumtable.Indexer).VariantIndex(); got != -1 {
			return fmt.Errorf("non-variant %v has VariantIndex %d", probe, got)
		}
		break
	}
	return nil
}

// CheckTable verifies that t holds exactly one pair per variant of K,
// ascending by ordinal, and that lookups by key land on the stored pair.
func CheckTable[K enumtable.Enumable[K], V any](t *enumtable.Table[K, V]) error {
	if t == nil {
		return fmt.Errorf("nil table")
	}
	var zero K
	vs := zero.Variants()
	pairs := t.Pairs()
	if len(pairs) != len(vs) {
		return fmt.Errorf("table has %d pairs, %T has %d variants", len(pairs), zero, len(vs))
	}
	if t.Len() != enumtable.Count[K]() {
		return fmt.Errorf("Len() = %d, Count = %d", t.Len(), enumtable.Count[K]())
	}
	slots := make(map[*V]K, len(vs))
	for i, p := range pairs {
		if want := enumtable.Of(vs[i]); p.Ordinal != want {
			return fmt.Errorf("pair %d has ordinal %d, want %d (%v)", i, p.Ordinal, want, vs[i])
		}
		if _, ok := t.Lookup(vs[i]); !ok {
			return fmt.Errorf("Lookup(%v) missed a stored variant", vs[i])
		}
		ptr := t.Ptr(vs[i])
		if prev, dup := slots[ptr]; dup {
			return fmt.Errorf("%v and %v share a value slot", prev, vs[i])
		}
		slots[ptr] = vs[i]
	}
	i := 0
	for k := range t.Keys() {
		if k != vs[i] {
			return fmt.Errorf("key %d is %v, want %v", i, k, vs[i])
		}
		i++
	}
	return nil
}

// CheckRoundTrip verifies that converting t to entries and back yields an
// equal table.
func CheckRoundTrip[K enumtable.Enumable[K], V comparable](t *enumtable.Table[K, V]) error {
	back, err := enumtable.FromSlice(t.ToSlice())
	if err != nil {
		return fmt.Errorf("FromSlice(ToSlice()): %w", err)
	}
	if !enumtable.TableEqual(t, back) {
		return fmt.Errorf("round trip changed the table: %v != %v", t, back)
	}
	return CheckTable(back)
}
