package enumtable

import (
	"bytes"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

var _ toml.Unmarshaler = (*Table[ordinalKey, int])(nil)

// EncodeTOML writes the table as a TOML document keyed by variant name.
// To nest a table inside a larger document, encode ToNamedMap instead.
func (t *Table[K, V]) EncodeTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(t.ToNamedMap())
}

// UnmarshalTOML decodes a TOML table keyed by variant name, either as a
// whole document or as a field of a decoded struct.
func (t *Table[K, V]) UnmarshalTOML(data any) error {
	raw, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("enumtable: expected a TOML table, got %T", data)
	}
	f := newNamedFill[K, V]()
	for name, item := range raw {
		v, err := decodeTOMLValue[V](item)
		if err != nil {
			return fmt.Errorf("enumtable: decode %s: %w", name, err)
		}
		if err := f.set(name, v); err != nil {
			return err
		}
	}
	out, err := f.finish()
	if err != nil {
		return err
	}
	t.pairs = out.pairs
	return nil
}

// decodeTOMLValue converts an already parsed TOML value into V by
// round-tripping it through the encoder, so V gets the decoder's full
// type handling.
func decodeTOMLValue[V any](item any) (V, error) {
	var box struct {
		V V `toml:"v"`
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(map[string]any{"v": item}); err != nil {
		return box.V, err
	}
	_, err := toml.NewDecoder(&buf).Decode(&box)
	return box.V, err
}
