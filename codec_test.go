package enumtable_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"enumtable"
	"enumtable/internal/testenum"
)

type palette struct {
	Name   string                                    `json:"name" toml:"name" msgpack:"name"`
	Weight *enumtable.Table[testenum.Color, float64] `json:"weight" toml:"weight" msgpack:"weight"`
}

func weights() *enumtable.Table[testenum.Color, float64] {
	return enumtable.NewWithFn(func(c testenum.Color) float64 { return float64(c) / 2 })
}

func TestJSONKeepsOrdinalOrder(t *testing.T) {
	data, err := json.Marshal(weights())
	require.NoError(t, err)
	assert.Equal(t, `{"Green":5.5,"Red":16.5,"Blue":111}`, string(data))

	var back enumtable.Table[testenum.Color, float64]
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, enumtable.TableEqual(weights(), &back))
}

func TestJSONNested(t *testing.T) {
	in := palette{Name: "warm", Weight: weights()}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out palette
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "warm", out.Name)
	require.NotNil(t, out.Weight)
	assert.Equal(t, 111.0, out.Weight.Get(testenum.Blue))
}

func TestJSONDecimalKeys(t *testing.T) {
	tbl := enumtable.NewWithFn(func(op testenum.Op) string { return enumtable.Name(op) })
	data, err := json.Marshal(tbl)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `{"0":"0","3":"3"`), string(data))
	assert.True(t, strings.HasSuffix(string(data), `"-2":"-2"}`), string(data))

	var back enumtable.Table[testenum.Op, string]
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "-2", back.Get(testenum.OpStore))
}

func TestJSONErrors(t *testing.T) {
	var tbl enumtable.Table[testenum.Color, int]
	err := json.Unmarshal([]byte(`{"Green":1,"Red":2}`), &tbl)
	require.ErrorIs(t, err, enumtable.ErrInvalidSize)

	err = json.Unmarshal([]byte(`{"Green":1,"Red":2,"Blue":3,"Pink":4}`), &tbl)
	require.ErrorIs(t, err, enumtable.ErrUnknownName)

	err = json.Unmarshal([]byte(`{"Green":1,"Red":2,"Blue":"x"}`), &tbl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode Blue")

	require.Error(t, json.Unmarshal([]byte(`[1,2,3]`), &tbl))
	assert.True(t, tbl.IsEmpty(), "failed decodes leave the table untouched")

	// "33" is Red's decimal form, so Red has two entries.
	err = json.Unmarshal([]byte(`{"Red":1,"33":2,"Green":3,"Blue":4}`), &tbl)
	var cerr *enumtable.ConvertError[testenum.Color]
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, enumtable.ConvertInvalidSize, cerr.Kind)
	assert.Equal(t, 3, cerr.Expected)
	assert.Equal(t, 4, cerr.Found)

	err = json.Unmarshal([]byte(`{"Red":1,"33":2,"Green":3}`), &tbl)
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, enumtable.ConvertMissingVariant, cerr.Kind)
	assert.Equal(t, testenum.Blue, cerr.Variant)

	full := enumtable.NewFilled[testenum.Color](7)
	require.NoError(t, json.Unmarshal([]byte(`null`), full))
	assert.Equal(t, 7, full.Get(testenum.Red))
}

func TestMsgpackRoundTrip(t *testing.T) {
	in := palette{Name: "cool", Weight: weights()}
	data, err := msgpack.Marshal(&in)
	require.NoError(t, err)

	var out palette
	require.NoError(t, msgpack.Unmarshal(data, &out))
	assert.Equal(t, "cool", out.Name)
	require.NotNil(t, out.Weight)
	assert.True(t, enumtable.TableEqual(in.Weight, out.Weight))
}

func TestMsgpackEncodesNamedMap(t *testing.T) {
	data, err := msgpack.Marshal(weights())
	require.NoError(t, err)

	var m map[string]float64
	require.NoError(t, msgpack.Unmarshal(data, &m))
	assert.Equal(t, map[string]float64{"Green": 5.5, "Red": 16.5, "Blue": 111}, m)

	short, err := msgpack.Marshal(map[string]float64{"Green": 1})
	require.NoError(t, err)
	var tbl enumtable.Table[testenum.Color, float64]
	require.ErrorIs(t, msgpack.Unmarshal(short, &tbl), enumtable.ErrInvalidSize)

	extra, err := msgpack.Marshal(map[string]float64{"Red": 1, "33": 2, "Green": 3, "Blue": 4})
	require.NoError(t, err)
	require.ErrorIs(t, msgpack.Unmarshal(extra, &tbl), enumtable.ErrInvalidSize)
	assert.True(t, tbl.IsEmpty())
}

func TestTOMLDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, weights().EncodeTOML(&buf))

	var back enumtable.Table[testenum.Color, float64]
	_, err := toml.Decode(buf.String(), &back)
	require.NoError(t, err)
	assert.True(t, enumtable.TableEqual(weights(), &back))
}

func TestTOMLField(t *testing.T) {
	const doc = `
name = "earth"

[weight]
Green = 1.5
Red = 2.0
Blue = 3.25
`
	var p palette
	_, err := toml.Decode(doc, &p)
	require.NoError(t, err)
	assert.Equal(t, "earth", p.Name)
	require.NotNil(t, p.Weight)
	assert.Equal(t, 3.25, p.Weight.Get(testenum.Blue))

	const partial = `
[weight]
Green = 1.5
`
	_, err = toml.Decode(partial, &p)
	require.ErrorIs(t, err, enumtable.ErrInvalidSize)

	const extra = `
[weight]
Green = 1.5
Red = 2.0
"33" = 2.5
Blue = 3.25
`
	var q palette
	_, err = toml.Decode(extra, &q)
	require.ErrorIs(t, err, enumtable.ErrInvalidSize)
}

func TestTOMLStructValues(t *testing.T) {
	type limit struct {
		Max  int    `toml:"max"`
		Unit string `toml:"unit"`
	}
	const doc = `
[a]
max = 1
unit = "s"

[b]
max = 2
unit = "ms"

[c]
max = 3
unit = "us"
`
	var tbl enumtable.Table[testenum.Letter, limit]
	_, err := toml.Decode(doc, &tbl)
	require.NoError(t, err)
	assert.Equal(t, limit{Max: 2, Unit: "ms"}, tbl.Get(testenum.LetterB))
}
