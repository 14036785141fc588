// Package derive turns integer enumerations declared in Go source into
// enumtable registries.
//
// For each requested type the analysis collects the package-level constants
// of that type, drops aliases (constants repeating an earlier value), and
// orders the rest by ordinal: the discriminant bits reinterpreted as an
// unsigned integer of the type's width on the chosen target. Rendering then
// emits, per type,
//
//   - a compile-time guard that fails when a constant's value changes,
//   - the ordinal-sorted variant array with a Variants method,
//   - a <Type>Count constant derived from the array length,
//   - optionally VariantIndex, a switch giving each variant's position,
//   - optionally String, MarshalText and UnmarshalText,
//   - an instantiation that fails to compile unless the type satisfies
//     enumtable.Enumable.
//
// Problems are reported through diag.Reporter; Analyze returns nil when it
// reported an error.
package derive
