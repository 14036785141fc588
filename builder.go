package enumtable

import "fmt"

// Builder assembles a table from pairs pushed in ordinal order, the order
// of K's Variants. A Builder is consumed by Build and its variants; further
// use panics.
type Builder[K Enumable[K], V any] struct {
	pairs    []Pair[V]
	idx      int
	consumed bool
}

// NewBuilder returns an empty builder with room for every variant of K.
func NewBuilder[K Enumable[K], V any]() *Builder[K, V] {
	return &Builder[K, V]{pairs: make([]Pair[V], Count[K]())}
}

func (b *Builder[K, V]) live() {
	if b.consumed {
		panic("enumtable: builder used after build")
	}
}

// Push appends the value of variant k. It panics when every slot is already
// filled.
func (b *Builder[K, V]) Push(k K, v V) {
	b.live()
	if b.idx >= len(b.pairs) {
		panic("enumtable: too many elements pushed")
	}
	b.pairs[b.idx] = Pair[V]{Ordinal: Of(k), Value: v}
	b.idx++
}

// PushUnchecked appends without the capacity check beyond Go's own bounds
// checking.
func (b *Builder[K, V]) PushUnchecked(k K, v V) {
	b.pairs[b.idx] = Pair[V]{Ordinal: Of(k), Value: v}
	b.idx++
}

// Len returns the number of pairs pushed so far.
func (b *Builder[K, V]) Len() int { return b.idx }

// Cap returns the number of variants of K.
func (b *Builder[K, V]) Cap() int { return len(b.pairs) }

// Filled reports whether every variant has been pushed.
func (b *Builder[K, V]) Filled() bool { return b.idx == len(b.pairs) }

// IsEmpty reports whether nothing has been pushed yet.
func (b *Builder[K, V]) IsEmpty() bool { return b.idx == 0 }

// BuildPairs returns the pushed pairs, or a *NotFilledError when fewer than
// Cap pairs were pushed. Either way the builder is consumed.
func (b *Builder[K, V]) BuildPairs() ([]Pair[V], error) {
	b.live()
	b.consumed = true
	if b.idx != len(b.pairs) {
		return nil, &NotFilledError{Expected: len(b.pairs), Current: b.idx}
	}
	if debugAssertions {
		checkPairs[K](b.pairs)
	}
	return b.pairs, nil
}

// BuildPairsUnchecked returns the pushed pairs assuming the builder is
// filled in ordinal order.
func (b *Builder[K, V]) BuildPairsUnchecked() []Pair[V] {
	b.live()
	b.consumed = true
	if debugAssertions {
		if b.idx != len(b.pairs) {
			panic(fmt.Sprintf("enumtable: unchecked build of a builder holding %d of %d elements", b.idx, len(b.pairs)))
		}
		checkPairs[K](b.pairs)
	}
	return b.pairs
}

// Build finalizes the builder into a table.
func (b *Builder[K, V]) Build() (*Table[K, V], error) {
	pairs, err := b.BuildPairs()
	if err != nil {
		return nil, err
	}
	return &Table[K, V]{pairs: pairs}, nil
}

// BuildUnchecked finalizes the builder into a table without the fill check.
func (b *Builder[K, V]) BuildUnchecked() *Table[K, V] {
	return &Table[K, V]{pairs: b.BuildPairsUnchecked()}
}
