package enumtable

import "fmt"

// KeyedBuilder assembles a table from values inserted in any order.
// Inserting a variant twice replaces the earlier value.
type KeyedBuilder[K Enumable[K], V any] struct {
	reg      *registry[K]
	values   []V
	filled   []bool
	count    int
	consumed bool
}

// NewKeyedBuilder returns an empty keyed builder for K.
func NewKeyedBuilder[K Enumable[K], V any]() *KeyedBuilder[K, V] {
	r := registryOf[K]()
	return &KeyedBuilder[K, V]{
		reg:    r,
		values: make([]V, len(r.variants)),
		filled: make([]bool, len(r.variants)),
	}
}

// Insert stores v for variant k and returns the value it replaced, if any.
// It panics if k is not a variant of K.
func (b *KeyedBuilder[K, V]) Insert(k K, v V) (prev V, replaced bool) {
	i, ok := b.reg.index(k)
	if !ok {
		panic(fmt.Sprintf("enumtable: %s is not a variant of %s", nameOf(k), b.reg.typ))
	}
	return b.insertAt(i, v)
}

func (b *KeyedBuilder[K, V]) insertAt(i int, v V) (prev V, replaced bool) {
	if b.consumed {
		panic("enumtable: builder used after build")
	}
	prev, replaced = b.values[i], b.filled[i]
	b.values[i] = v
	if !replaced {
		b.filled[i] = true
		b.count++
	}
	return prev, replaced
}

// Len returns the number of distinct variants inserted so far.
func (b *KeyedBuilder[K, V]) Len() int { return b.count }

// Filled reports whether every variant has a value.
func (b *KeyedBuilder[K, V]) Filled() bool { return b.count == len(b.values) }

// Missing returns the first variant, in ordinal order, without a value.
func (b *KeyedBuilder[K, V]) Missing() (K, bool) {
	for i, ok := range b.filled {
		if !ok {
			return b.reg.variants[i], true
		}
	}
	var zero K
	return zero, false
}

// Build finalizes the builder into a table, or returns a *NotFilledError.
// Unlike Builder, a failed Build leaves the builder open so the variants
// reported by Missing can still be inserted.
func (b *KeyedBuilder[K, V]) Build() (*Table[K, V], error) {
	if b.consumed {
		panic("enumtable: builder used after build")
	}
	if b.count != len(b.values) {
		return nil, &NotFilledError{Expected: len(b.values), Current: b.count}
	}
	b.consumed = true
	pairs := make([]Pair[V], len(b.values))
	for i, v := range b.values {
		pairs[i] = Pair[V]{Ordinal: b.reg.ordinals[i], Value: v}
	}
	return &Table[K, V]{pairs: pairs}, nil
}

// buildComplete finalizes the builder, reporting the first missing variant
// rather than a count.
func (b *KeyedBuilder[K, V]) buildComplete() (*Table[K, V], error) {
	if missing, ok := b.Missing(); ok {
		return nil, &ConvertError[K]{Kind: ConvertMissingVariant, Variant: missing}
	}
	return b.Build()
}
