package enumtable

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"sync"
)

// Enumable is implemented by enumerations that can key a Table. Variants
// must return every variant exactly once, ascending by ordinal; the
// enumtablegen command emits a conforming implementation.
type Enumable[K any] interface {
	Discriminant
	Variants() []K
}

// Indexer is optionally implemented alongside Variants. VariantIndex returns
// the receiver's position in Variants, or -1 when the receiver is not a
// variant.
type Indexer interface {
	VariantIndex() int
}

// registry caches the ordinal-sorted variant set of one enumeration.
type registry[K Enumable[K]] struct {
	typ      reflect.Type
	variants []K
	ordinals []Ordinal
	indexed  bool

	namesOnce sync.Once
	names     map[string]int
}

var registries sync.Map // reflect.Type -> *registry[K]

func registryOf[K Enumable[K]]() *registry[K] {
	typ := reflect.TypeFor[K]()
	if r, ok := registries.Load(typ); ok {
		return r.(*registry[K])
	}
	r, _ := registries.LoadOrStore(typ, newRegistry[K](typ))
	return r.(*registry[K])
}

func newRegistry[K Enumable[K]](typ reflect.Type) *registry[K] {
	var zero K
	vs := slices.Clone(zero.Variants())
	if len(vs) == 0 {
		panic(fmt.Sprintf("enumtable: %s has no variants", typ))
	}
	r := &registry[K]{
		typ:      typ,
		variants: vs,
		ordinals: make([]Ordinal, len(vs)),
	}
	for i, v := range vs {
		r.ordinals[i] = Of(v)
	}
	_, r.indexed = any(zero).(Indexer)
	if debugAssertions {
		r.verify()
	}
	return r
}

func (r *registry[K]) verify() {
	for i := 1; i < len(r.ordinals); i++ {
		if r.ordinals[i-1] >= r.ordinals[i] {
			panic(fmt.Sprintf(
				"enumtable: %s.Variants is not sorted by ordinal: %s (%d) precedes %s (%d); regenerate it with enumtablegen",
				r.typ, nameOf(r.variants[i-1]), r.ordinals[i-1], nameOf(r.variants[i]), r.ordinals[i]))
		}
	}
	if !r.indexed {
		return
	}
	for i, v := range r.variants {
		if got := any(v).(Indexer).VariantIndex(); got != i {
			panic(fmt.Sprintf(
				"enumtable: %s.VariantIndex(%s) = %d, want %d; regenerate it with enumtablegen",
				r.typ, nameOf(v), got, i))
		}
	}
}

// index returns the position of k in the sorted variant set.
func (r *registry[K]) index(k K) (int, bool) {
	return searchOrdinals(r.ordinals, Of(k))
}

// nameIndex maps every variant name, and the decimal form of every
// discriminant, to its position.
func (r *registry[K]) nameIndex() map[string]int {
	r.namesOnce.Do(func() {
		r.names = make(map[string]int, 2*len(r.variants))
		for i, v := range r.variants {
			r.names[normalizeName(nameOf(v))] = i
		}
		for i, v := range r.variants {
			dec := fmt.Sprintf("%d", v)
			if _, taken := r.names[dec]; !taken {
				r.names[dec] = i
			}
		}
	})
	return r.names
}

func (r *registry[K]) lookupName(name string) (int, bool) {
	i, ok := r.nameIndex()[normalizeName(name)]
	return i, ok
}

func searchOrdinals(ords []Ordinal, o Ordinal) (int, bool) {
	i := sort.Search(len(ords), func(i int) bool { return ords[i] >= o })
	return i, i < len(ords) && ords[i] == o
}

// Count returns the number of variants of K.
func Count[K Enumable[K]]() int {
	return len(registryOf[K]().variants)
}

// VariantsOf returns a copy of K's variants in ordinal order.
func VariantsOf[K Enumable[K]]() []K {
	return slices.Clone(registryOf[K]().variants)
}

// IsVariant reports whether k is one of K's variants.
func IsVariant[K Enumable[K]](k K) bool {
	_, ok := registryOf[K]().index(k)
	return ok
}

// SortVariants returns a copy of vs stably sorted by ordinal. It is the
// run-time counterpart of what enumtablegen does at generation time, for
// hand-written Variants methods:
//
//	var colorVariants = enumtable.SortVariants([]Color{Red, Green, Blue})
//
//	func (Color) Variants() []Color { return colorVariants }
func SortVariants[K Discriminant](vs []K) []K {
	out := slices.Clone(vs)
	slices.SortStableFunc(out, Compare[K])
	return out
}

// IndexOf returns the position of k in vs, which must be sorted by ordinal,
// or -1 if k is not present.
func IndexOf[K Discriminant](vs []K, k K) int {
	i, ok := slices.BinarySearchFunc(vs, k, Compare[K])
	if !ok {
		return -1
	}
	return i
}
