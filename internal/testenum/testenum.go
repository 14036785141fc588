// Package testenum declares the enumerations the enumtable tests key tables
// with. The *_enumtable.go files are produced by enumtablegen.
package testenum

import "enumtable"

//go:generate go run enumtable/cmd/enumtablegen gen --type Color --names
//go:generate go run enumtable/cmd/enumtablegen gen --type Letter --names --trim-prefix Letter --name-case lower
//go:generate go run enumtable/cmd/enumtablegen gen --type Op

// Color has discriminants out of declaration order.
type Color uint8

const (
	Red   Color = 33
	Green Color = 11
	Blue  Color = 222
)

// Letter is serialized under lower-case names without its prefix.
type Letter int

const (
	LetterA Letter = 100
	LetterB Letter = 1
	LetterC Letter = 20
)

// Op mixes negative and positive discriminants. Without names it is
// serialized by its decimal discriminant.
type Op int16

const (
	OpNop   Op = 40
	OpLoad  Op = 3
	OpStore Op = -2
	OpAdd   Op = 17
	OpSub   Op = 16
	OpJump  Op = 1000
	OpHalt  Op = 0
)

// Sparse has a hand-written Variants method and no VariantIndex, so tables
// keyed by it locate entries by binary search.
type Sparse uint32

const (
	SparseLow  Sparse = 7
	SparseMid  Sparse = 1 << 20
	SparseHigh Sparse = 1<<32 - 1
	SparseZero Sparse = 0
)

var sparseVariants = enumtable.SortVariants([]Sparse{SparseLow, SparseMid, SparseHigh, SparseZero})

func (Sparse) Variants() []Sparse { return sparseVariants }

// Unsorted returns its variants out of ordinal order, which debug builds
// reject on first use.
type Unsorted uint8

func (Unsorted) Variants() []Unsorted { return []Unsorted{2, 1} }

// Empty has no variants and cannot key a table.
type Empty uint8

func (Empty) Variants() []Empty { return nil }
