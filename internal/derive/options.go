package derive

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"enumtable/internal/layout"
)

// DefaultRuntimeImport is the import path of the enumtable runtime package.
const DefaultRuntimeImport = "enumtable"

// GeneratedSuffix is appended to the lower-cased type name to form the
// default output file name.
const GeneratedSuffix = "_enumtable.go"

// NameCase selects how variant labels are cased.
type NameCase string

const (
	CaseAsIs  NameCase = "as-is"
	CaseLower NameCase = "lower"
	CaseUpper NameCase = "upper"
	CaseTitle NameCase = "title"
)

// ParseNameCase validates a --name-case value.
func ParseNameCase(s string) (NameCase, error) {
	switch c := NameCase(strings.ToLower(strings.TrimSpace(s))); c {
	case "", CaseAsIs:
		return CaseAsIs, nil
	case CaseLower, CaseUpper, CaseTitle:
		return c, nil
	default:
		return "", fmt.Errorf("invalid name case %q (expected: as-is|lower|upper|title)", s)
	}
}

func (c NameCase) apply(s string) string {
	switch c {
	case CaseLower:
		return cases.Lower(language.Und).String(s)
	case CaseUpper:
		return cases.Upper(language.Und).String(s)
	case CaseTitle:
		return cases.Title(language.Und).String(s)
	default:
		return s
	}
}

// Options controls analysis and rendering.
type Options struct {
	// Index emits VariantIndex.
	Index bool
	// Names emits String, MarshalText and UnmarshalText.
	Names      bool
	TrimPrefix string
	NameCase   NameCase
	// RuntimeImport is the import path of the enumtable package.
	RuntimeImport string
	// Output overrides the output file name; all types of a package are
	// then written to it.
	Output string
	Target layout.Target
}

// DefaultOptions returns the options used when no flags or manifest
// settings are given.
func DefaultOptions() Options {
	return Options{
		Index:         true,
		NameCase:      CaseAsIs,
		RuntimeImport: DefaultRuntimeImport,
		Target:        layout.Host(),
	}
}
