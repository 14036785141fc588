package enumtable

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes the table as an object keyed by variant name, in
// ordinal order.
func (t *Table[K, V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range t.pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		name := nameOf(Variant[K](p.Ordinal))
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.Value)
		if err != nil {
			return nil, fmt.Errorf("enumtable: encode %s: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object keyed by variant name. Every variant must
// be present; null leaves the table unchanged.
func (t *Table[K, V]) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return nil
	}
	f := newNamedFill[K, V]()
	for name, msg := range raw {
		var v V
		if err := json.Unmarshal(msg, &v); err != nil {
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
