package enumtable

import "iter"

// Entry is a variant/value pair in a plain collection.
type Entry[K Discriminant, V any] struct {
	Key   K
	Value V
}

// ToSlice returns the table's entries in ordinal order.
func (t *Table[K, V]) ToSlice() []Entry[K, V] {
	out := make([]Entry[K, V], len(t.pairs))
	for i, p := range t.pairs {
		out[i] = Entry[K, V]{Key: Variant[K](p.Ordinal), Value: p.Value}
	}
	return out
}

// FromSlice builds a table from entries in any order. The slice must hold
// exactly one entry per variant: a length mismatch is reported as
// ConvertInvalidSize, and the first variant without an entry as
// ConvertMissingVariant.
func FromSlice[K Enumable[K], V any](entries []Entry[K, V]) (*Table[K, V], error) {
	r := registryOf[K]()
	if len(entries) != len(r.variants) {
		return nil, &ConvertError[K]{Kind: ConvertInvalidSize, Expected: len(r.variants), Found: len(entries)}
	}
	rest := make([]Entry[K, V], len(entries))
	copy(rest, entries)
	pairs := make([]Pair[V], len(r.variants))
	for i, variant := range r.variants {
		j := -1
		for n := range rest {
			if Of(rest[n].Key) == r.ordinals[i] {
				j = n
				break
			}
		}
		if j < 0 {
			return nil, &ConvertError[K]{Kind: ConvertMissingVariant, Variant: variant}
		}
		pairs[i] = Pair[V]{Ordinal: r.ordinals[i], Value: rest[j].Value}
		last := len(rest) - 1
		rest[j] = rest[last]
		rest = rest[:last]
	}
	return &Table[K, V]{pairs: pairs}, nil
}

// ToMap returns the table's entries as a map.
func (t *Table[K, V]) ToMap() map[K]V {
	out := make(map[K]V, len(t.pairs))
	for _, p := range t.pairs {
		out[Variant[K](p.Ordinal)] = p.Value
	}
	return out
}

// FromMap builds a table from a map holding exactly the variants of K.
func FromMap[K Enumable[K], V any](m map[K]V) (*Table[K, V], error) {
	r := registryOf[K]()
	if len(m) != len(r.variants) {
		return nil, &ConvertError[K]{Kind: ConvertInvalidSize, Expected: len(r.variants), Found: len(m)}
	}
	pairs := make([]Pair[V], len(r.variants))
	for i, variant := range r.variants {
		v, ok := m[variant]
		if !ok {
			return nil, &ConvertError[K]{Kind: ConvertMissingVariant, Variant: variant}
		}
		pairs[i] = Pair[V]{Ordinal: r.ordinals[i], Value: v}
	}
	return &Table[K, V]{pairs: pairs}, nil
}

// FromSeq2 builds a table from a key/value sequence such as an ordered map's
// iterator. The sequence must cover each variant exactly once. A key that
// is not a variant counts toward the size and leaves a variant missing.
func FromSeq2[K Enumable[K], V any](seq iter.Seq2[K, V]) (*Table[K, V], error) {
	b := NewKeyedBuilder[K, V]()
	n := 0
	for k, v := range seq {
		n++
		if i, ok := b.reg.index(k); ok {
			b.insertAt(i, v)
		}
	}
	if n != len(b.values) {
		return nil, &ConvertError[K]{Kind: ConvertInvalidSize, Expected: len(b.values), Found: n}
	}
	return b.buildComplete()
}

// ToNamedMap returns the table's values keyed by variant name.
func (t *Table[K, V]) ToNamedMap() map[string]V {
	out := make(map[string]V, len(t.pairs))
	for _, p := range t.pairs {
		out[nameOf(Variant[K](p.Ordinal))] = p.Value
	}
	return out
}

// FromNamedMap builds a table from values keyed by variant name. Names are
// matched after Unicode normalization; decimal discriminants are accepted
// too.
func FromNamedMap[K Enumable[K], V any](m map[string]V) (*Table[K, V], error) {
	f := newNamedFill[K, V]()
	for name, v := range m {
		if err := f.set(name, v); err != nil {
			return nil, err
		}
	}
	return f.finish()
}

// namedFill collects decoded name/value entries for the serialization
// adapters. A name and the decimal form of the same variant are two
// entries, so they fail the size check instead of replacing each other.
type namedFill[K Enumable[K], V any] struct {
	b *KeyedBuilder[K, V]
	n int
}

func newNamedFill[K Enumable[K], V any]() *namedFill[K, V] {
	return &namedFill[K, V]{b: NewKeyedBuilder[K, V]()}
}

func (f *namedFill[K, V]) index(name string) (int, error) {
	i, ok := f.b.reg.lookupName(name)
	if !ok {
		return 0, &ConvertError[K]{Kind: ConvertUnknownName, Name: name}
	}
	return i, nil
}

func (f *namedFill[K, V]) set(name string, v V) error {
	i, err := f.index(name)
	if err != nil {
		return err
	}
	f.b.insertAt(i, v)
	f.n++
	return nil
}

func (f *namedFill[K, V]) finish() (*Table[K, V], error) {
	if want := len(f.b.values); f.n != want {
		return nil, &ConvertError[K]{Kind: ConvertInvalidSize, Expected: want, Found: f.n}
	}
	return f.b.buildComplete()
}
