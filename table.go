package enumtable

import (
	"fmt"
	"iter"
	"reflect"
)

// Pair is one stored entry: a variant's ordinal and its value.
type Pair[V any] struct {
	Ordinal Ordinal
	Value   V
}

// Table maps every variant of K to a value of type V. Entries are stored
// ascending by ordinal. A Table is not safe for concurrent mutation.
//
// The zero Table holds no entries and is only useful as a decoding target.
type Table[K Enumable[K], V any] struct {
	pairs []Pair[V]
}

// FromSorted wraps pairs without copying. The caller guarantees that pairs
// holds one entry per variant of K, ascending by ordinal; builds without the
// enumtable_release tag verify it.
func FromSorted[K Enumable[K], V any](pairs []Pair[V]) *Table[K, V] {
	if debugAssertions {
		checkPairs[K](pairs)
	}
	return &Table[K, V]{pairs: pairs}
}

func checkPairs[K Enumable[K], V any](pairs []Pair[V]) {
	r := registryOf[K]()
	if len(pairs) != len(r.ordinals) {
		panic(fmt.Sprintf("enumtable: %d pairs for %s, which has %d variants", len(pairs), r.typ, len(r.ordinals)))
	}
	for i, p := range pairs {
		if p.Ordinal != r.ordinals[i] {
			panic(fmt.Sprintf("enumtable: pair %d has ordinal %d, want %d (%s); pairs must follow ordinal order",
				i, p.Ordinal, r.ordinals[i], nameOf(r.variants[i])))
		}
	}
}

// NewWithFn builds a table by calling f once per variant, in ordinal order.
func NewWithFn[K Enumable[K], V any](f func(K) V) *Table[K, V] {
	b := NewBuilder[K, V]()
	for _, k := range registryOf[K]().variants {
		b.PushUnchecked(k, f(k))
	}
	return b.BuildUnchecked()
}

// TryNewWithFn is like NewWithFn but stops at the first error, which is
// returned as a *VariantError naming the variant.
func TryNewWithFn[K Enumable[K], V any](f func(K) (V, error)) (*Table[K, V], error) {
	b := NewBuilder[K, V]()
	for _, k := range registryOf[K]().variants {
		v, err := f(k)
		if err != nil {
			return nil, &VariantError[K]{Variant: k, Err: err}
		}
		b.PushUnchecked(k, v)
	}
	return b.BuildUnchecked(), nil
}

// CheckedNewWithFn is like NewWithFn for a function that may have no value
// for a variant. The first such variant is reported as an *AbsentError.
func CheckedNewWithFn[K Enumable[K], V any](f func(K) (V, bool)) (*Table[K, V], error) {
	b := NewBuilder[K, V]()
	for _, k := range registryOf[K]().variants {
		v, ok := f(k)
		if !ok {
			return nil, &AbsentError[K]{Variant: k}
		}
		b.PushUnchecked(k, v)
	}
	return b.BuildUnchecked(), nil
}

// index locates k, preferring the generated VariantIndex over a binary
// search on ordinals.
func (t *Table[K, V]) index(k K) (int, bool) {
	if ix, ok := any(k).(Indexer); ok {
		i := ix.VariantIndex()
		if i < 0 || i >= len(t.pairs) {
			return i, false
		}
		if debugAssertions && t.pairs[i].Ordinal != Of(k) {
			panic(fmt.Sprintf("enumtable: %s.VariantIndex(%s) = %d points at ordinal %d, want %d",
				reflect.TypeFor[K](), nameOf(k), i, t.pairs[i].Ordinal, Of(k)))
		}
		return i, true
	}
	o := Of(k)
	lo, hi := 0, len(t.pairs)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if t.pairs[mid].Ordinal < o {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, lo < len(t.pairs) && t.pairs[lo].Ordinal == o
}

func (t *Table[K, V]) mustIndex(k K) int {
	i, ok := t.index(k)
	if !ok {
		if len(t.pairs) == 0 {
			panic(fmt.Sprintf("enumtable: lookup of %s in an empty Table[%s]", nameOf(k), reflect.TypeFor[K]()))
		}
		panic(fmt.Sprintf("enumtable: %s is not a variant of %s", nameOf(k), reflect.TypeFor[K]()))
	}
	return i
}

// Get returns the value of variant k. It panics if k is not a variant.
func (t *Table[K, V]) Get(k K) V {
	return t.pairs[t.mustIndex(k)].Value
}

// Ptr returns a pointer to the value of variant k, valid for the lifetime
// of the table.
func (t *Table[K, V]) Ptr(k K) *V {
	return &t.pairs[t.mustIndex(k)].Value
}

// Set replaces the value of variant k and returns the previous one.
func (t *Table[K, V]) Set(k K, v V) V {
	p := &t.pairs[t.mustIndex(k)].Value
	old := *p
	*p = v
	return old
}

// Lookup is Get for keys that may not be variants, such as integers read
// from the outside world.
func (t *Table[K, V]) Lookup(k K) (V, bool) {
	i, ok := t.index(k)
	if !ok {
		var zero V
		return zero, false
	}
	return t.pairs[i].Value, true
}

// Len returns the number of variants of K.
func (t *Table[K, V]) Len() int { return len(t.pairs) }

// IsEmpty reports false for every constructed table; enumerations with no
// variants cannot key a Table.
func (t *Table[K, V]) IsEmpty() bool { return len(t.pairs) == 0 }

// Keys yields the variants in ordinal order.
func (t *Table[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, p := range t.pairs {
			if !yield(Variant[K](p.Ordinal)) {
				return
			}
		}
	}
}

// Values yields the values in ordinal order of their variants.
func (t *Table[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, p := range t.pairs {
			if !yield(p.Value) {
				return
			}
		}
	}
}

// ValuesMut yields a pointer to each value in ordinal order.
func (t *Table[K, V]) ValuesMut() iter.Seq[*V] {
	return func(yield func(*V) bool) {
		for i := range t.pairs {
			if !yield(&t.pairs[i].Value) {
				return
			}
		}
	}
}

// All yields variant/value pairs in ordinal order.
func (t *Table[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, p := range t.pairs {
			if !yield(Variant[K](p.Ordinal), p.Value) {
				return
			}
		}
	}
}

// AllMut yields each variant with a pointer to its value.
func (t *Table[K, V]) AllMut() iter.Seq2[K, *V] {
	return func(yield func(K, *V) bool) {
		for i := range t.pairs {
			if !yield(Variant[K](t.pairs[i].Ordinal), &t.pairs[i].Value) {
				return
			}
		}
	}
}

// Pairs returns a copy of the stored entries.
func (t *Table[K, V]) Pairs() []Pair[V] {
	out := make([]Pair[V], len(t.pairs))
	copy(out, t.pairs)
	return out
}

// ordinalKey is a one-variant enumeration for compile-time interface checks.
type ordinalKey uint8

func (ordinalKey) Variants() []ordinalKey { return []ordinalKey{0} }
