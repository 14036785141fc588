package enumtable

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	_ msgpack.CustomEncoder = (*Table[ordinalKey, int])(nil)
	_ msgpack.CustomDecoder = (*Table[ordinalKey, int])(nil)
)

// EncodeMsgpack writes the table as a map keyed by variant name.
func (t *Table[K, V]) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(len(t.pairs)); err != nil {
		return err
	}
	for _, p := range t.pairs {
		name := nameOf(Variant[K](p.Ordinal))
		if err := enc.EncodeString(name); err != nil {
			return err
		}
		if err := enc.Encode(p.Value); err != nil {
			return fmt.Errorf("enumtable: encode %s: %w", name, err)
		}
	}
	return nil
}

// DecodeMsgpack reads a map keyed by variant name. Every variant must be
// present; nil leaves the table unchanged.
func (t *Table[K, V]) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}
	if n < 0 {
		return nil
	}
	f := newNamedFill[K, V]()
	for range n {
		name, err := dec.DecodeString()
		if err != nil {
			return err
		}
		var v V
		if err := dec.Decode(&v); err != nil {
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
