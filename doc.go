// Package enumtable provides Table, a total mapping from the variants of a
// closed integer enumeration to values.
//
// An enumeration is a defined integer type plus its typed constants:
//
//	type Color uint8
//
//	const (
//		Red   Color = 33
//		Green Color = 11
//		Blue  Color = 222
//	)
//
// Running enumtablegen on Color emits a Variants method returning the
// constants sorted by ordinal, plus a VariantIndex method used for constant
// time lookup. With that in place a table holds exactly one value per
// variant:
//
//	t := enumtable.NewWithFn(func(c Color) string { return c.String() })
//	t.Get(Blue)          // "Blue"
//	t.Set(Red, "crimson") // returns "Red"
//
// # Ordinals
//
// A variant's ordinal is its discriminant reinterpreted as an unsigned
// integer of the same width and widened to the platform word. Tables keep
// their entries ascending by ordinal, so iteration order is ordinal order
// rather than declaration order, and lookups without VariantIndex fall back
// to a binary search.
//
// # Construction
//
// NewWithFn, TryNewWithFn and CheckedNewWithFn build a table by calling a
// function once per variant. Builder accepts pairs pushed in ordinal order;
// KeyedBuilder accepts them in any order. FromSlice, FromMap and FromSeq2
// convert from ordinary collections and report a ConvertError when the
// source does not cover every variant exactly.
//
// # Assertions
//
// Registry sortedness, unchecked builds and index lookups are verified at
// run time unless the program is built with the enumtable_release tag.
package enumtable
