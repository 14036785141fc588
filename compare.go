package enumtable

import (
	"fmt"
	"hash/maphash"
	"strings"
)

// Clone returns a table with its own copy of the entries. Values are copied
// shallowly.
func (t *Table[K, V]) Clone() *Table[K, V] {
	return &Table[K, V]{pairs: t.Pairs()}
}

// String formats the table as {Name: value, ...} in ordinal order.
func (t *Table[K, V]) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range t.pairs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", nameOf(Variant[K](p.Ordinal)), p.Value)
	}
	b.WriteByte('}')
	return b.String()
}

// TableEqual reports whether a and b hold equal values for every variant.
func TableEqual[K Enumable[K], V comparable](a, b *Table[K, V]) bool {
	return TableEqualFunc(a, b, func(x, y V) bool { return x == y })
}

// TableEqualFunc is TableEqual with a custom value comparison.
func TableEqualFunc[K Enumable[K], V, W any](a *Table[K, V], b *Table[K, W], eq func(V, W) bool) bool {
	if len(a.pairs) != len(b.pairs) {
		return false
	}
	for i := range a.pairs {
		if a.pairs[i].Ordinal != b.pairs[i].Ordinal || !eq(a.pairs[i].Value, b.pairs[i].Value) {
			return false
		}
	}
	return true
}

// Hash returns a hash of t's entries under seed. Equal tables hash equally
// under the same seed.
func Hash[K Enumable[K], V comparable](seed maphash.Seed, t *Table[K, V]) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	for _, p := range t.pairs {
		maphash.WriteComparable(&h, p.Ordinal)
		maphash.WriteComparable(&h, p.Value)
	}
	return h.Sum64()
}
