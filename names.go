package enumtable

import (
	"encoding"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// nameOf returns the serialized name of a variant: its text form, its
// String form, or its decimal discriminant, in that order of preference.
func nameOf[K Discriminant](k K) string {
	switch v := any(k).(type) {
	case encoding.TextMarshaler:
		if b, err := v.MarshalText(); err == nil {
			return string(b)
		}
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprintf("%d", k)
}

func normalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Name returns the name k is serialized under.
func Name[K Discriminant](k K) string {
	return nameOf(k)
}

// ParseName resolves a serialized variant name, or the decimal form of a
// discriminant, to a variant of K.
func ParseName[K Enumable[K]](name string) (K, error) {
	r := registryOf[K]()
	i, ok := r.lookupName(name)
	if !ok {
		var zero K
		return zero, &ConvertError[K]{Kind: ConvertUnknownName, Name: name}
	}
	return r.variants[i], nil
}
