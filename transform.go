package enumtable

// Map returns a table holding f applied to each value of t. The result has
// the same ordinal layout as t.
func Map[K Enumable[K], V, U any](t *Table[K, V], f func(V) U) *Table[K, U] {
	pairs := make([]Pair[U], len(t.pairs))
	for i, p := range t.pairs {
		pairs[i] = Pair[U]{Ordinal: p.Ordinal, Value: f(p.Value)}
	}
	return &Table[K, U]{pairs: pairs}
}

// MapWithKey is Map with the variant passed alongside each value.
func MapWithKey[K Enumable[K], V, U any](t *Table[K, V], f func(K, V) U) *Table[K, U] {
	pairs := make([]Pair[U], len(t.pairs))
	for i, p := range t.pairs {
		pairs[i] = Pair[U]{Ordinal: p.Ordinal, Value: f(Variant[K](p.Ordinal), p.Value)}
	}
	return &Table[K, U]{pairs: pairs}
}

// MapMut replaces every value in place with f applied to it.
func (t *Table[K, V]) MapMut(f func(V) V) {
	for i := range t.pairs {
		t.pairs[i].Value = f(t.pairs[i].Value)
	}
}

// MapMutWithKey is MapMut with the variant passed alongside each value.
func (t *Table[K, V]) MapMutWithKey(f func(K, V) V) {
	for i := range t.pairs {
		t.pairs[i].Value = f(Variant[K](t.pairs[i].Ordinal), t.pairs[i].Value)
	}
}

// NewFilled returns a table with every variant mapped to v.
func NewFilled[K Enumable[K], V any](v V) *Table[K, V] {
	return NewWithFn(func(K) V { return v })
}

// NewZero returns a table with every variant mapped to V's zero value.
func NewZero[K Enumable[K], V any]() *Table[K, V] {
	var zero V
	return NewFilled[K](zero)
}

// NewNone returns a table of optional values, all absent.
func NewNone[K Enumable[K], V any]() *Table[K, *V] {
	return NewFilled[K, *V](nil)
}
