package enumtable

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFilled is matched by *NotFilledError.
	ErrNotFilled = errors.New("enumtable: builder not filled")
	// ErrAbsent is matched by *AbsentError.
	ErrAbsent = errors.New("enumtable: value absent")
	// ErrInvalidSize is matched by a *ConvertError of kind ConvertInvalidSize.
	ErrInvalidSize = errors.New("enumtable: invalid size")
	// ErrMissingVariant is matched by a *ConvertError of kind ConvertMissingVariant.
	ErrMissingVariant = errors.New("enumtable: missing variant")
	// ErrUnknownName is matched by a *ConvertError of kind ConvertUnknownName.
	ErrUnknownName = errors.New("enumtable: unknown variant name")
)

// NotFilledError is returned when a builder is finalized before every
// variant received a value.
type NotFilledError struct {
	Expected int
	Current  int
}

func (e *NotFilledError) Error() string {
	return fmt.Sprintf("enumtable: builder not filled: expected %d elements, got %d", e.Expected, e.Current)
}

func (e *NotFilledError) Is(target error) bool { return target == ErrNotFilled }

// VariantError wraps the error returned by a TryNewWithFn callback together
// with the variant it was called for.
type VariantError[K Discriminant] struct {
	Variant K
	Err     error
}

func (e *VariantError[K]) Error() string {
	return fmt.Sprintf("enumtable: variant %s: %v", nameOf(e.Variant), e.Err)
}

func (e *VariantError[K]) Unwrap() error { return e.Err }

// AbsentError names the first variant a CheckedNewWithFn callback produced
// no value for.
type AbsentError[K Discriminant] struct {
	Variant K
}

func (e *AbsentError[K]) Error() string {
	return fmt.Sprintf("enumtable: no value for variant %s", nameOf(e.Variant))
}

func (e *AbsentError[K]) Is(target error) bool { return target == ErrAbsent }

// ConvertErrorKind enumerates the ways a collection can fail to describe a
// table.
type ConvertErrorKind uint8

const (
	// ConvertInvalidSize: the source has a different number of entries than
	// the enumeration has variants.
	ConvertInvalidSize ConvertErrorKind = iota + 1
	// ConvertMissingVariant: a variant has no entry in the source.
	ConvertMissingVariant
	// ConvertUnknownName: a serialized key names no variant.
	ConvertUnknownName
)

// ConvertError reports a source collection that does not map every variant
// exactly once.
type ConvertError[K Discriminant] struct {
	Kind     ConvertErrorKind
	Expected int    // ConvertInvalidSize
	Found    int    // ConvertInvalidSize
	Variant  K      // ConvertMissingVariant
	Name     string // ConvertUnknownName
}

func (e *ConvertError[K]) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case ConvertInvalidSize:
		return fmt.Sprintf("enumtable: invalid size: expected %d entries, found %d", e.Expected, e.Found)
	case ConvertMissingVariant:
		return fmt.Sprintf("enumtable: missing variant %s", nameOf(e.Variant))
	case ConvertUnknownName:
		return fmt.Sprintf("enumtable: unknown variant name %q", e.Name)
	default:
		return fmt.Sprintf("enumtable: conversion error kind=%d", e.Kind)
	}
}

func (e *ConvertError[K]) Is(target error) bool {
	switch e.Kind {
	case ConvertInvalidSize:
		return target == ErrInvalidSize
	case ConvertMissingVariant:
		return target == ErrMissingVariant
	case ConvertUnknownName:
		return target == ErrUnknownName
	}
	return false
}
