package enumtable_test

import (
	"errors"
	"hash/maphash"
	"maps"
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enumtable"
	"enumtable/internal/testenum"
)

func colorTable() *enumtable.Table[testenum.Color, int] {
	return enumtable.NewWithFn(func(c testenum.Color) int { return int(c) })
}

func TestNewWithFnCallsInOrdinalOrder(t *testing.T) {
	var seen []testenum.Color
	tbl := enumtable.NewWithFn(func(c testenum.Color) string {
		seen = append(seen, c)
		return c.String()
	})
	assert.Equal(t, []testenum.Color{testenum.Green, testenum.Red, testenum.Blue}, seen)
	assert.Equal(t, 3, tbl.Len())
	assert.False(t, tbl.IsEmpty())
	assert.Equal(t, "Blue", tbl.Get(testenum.Blue))
}

func TestGetSetPtr(t *testing.T) {
	tbl := colorTable()
	assert.Equal(t, 33, tbl.Get(testenum.Red))

	old := tbl.Set(testenum.Red, 1)
	assert.Equal(t, 33, old)
	assert.Equal(t, 1, tbl.Get(testenum.Red))

	*tbl.Ptr(testenum.Blue) += 5
	assert.Equal(t, 227, tbl.Get(testenum.Blue))
	assert.Equal(t, 11, tbl.Get(testenum.Green))
}

func TestLookup(t *testing.T) {
	tbl := colorTable()
	v, ok := tbl.Lookup(testenum.Green)
	assert.True(t, ok)
	assert.Equal(t, 11, v)

	v, ok = tbl.Lookup(testenum.Color(200))
	assert.False(t, ok)
	assert.Zero(t, v)
}

func TestGetPanicsForNonVariant(t *testing.T) {
	tbl := colorTable()
	assert.PanicsWithValue(t, "enumtable: 12 is not a variant of testenum.Color", func() {
		tbl.Get(testenum.Color(12))
	})
	assert.Panics(t, func() { tbl.Set(testenum.Color(0), 1) })

	sparse := enumtable.NewZero[testenum.Sparse, int]()
	assert.Panics(t, func() { sparse.Get(testenum.Sparse(6)) })
	assert.Panics(t, func() { sparse.Get(testenum.Sparse(1<<32 - 2)) })
}

func TestZeroTablePanicsOnLookup(t *testing.T) {
	var tbl enumtable.Table[testenum.Op, int]
	assert.True(t, tbl.IsEmpty())
	assert.Panics(t, func() { tbl.Get(testenum.OpHalt) })
	_, ok := tbl.Lookup(testenum.OpHalt)
	assert.False(t, ok)
}

func TestSparseUsesBinarySearch(t *testing.T) {
	tbl := enumtable.NewWithFn(func(s testenum.Sparse) uint64 { return uint64(s) * 2 })
	for _, s := range enumtable.VariantsOf[testenum.Sparse]() {
		assert.Equal(t, uint64(s)*2, tbl.Get(s))
	}
	tbl.Set(testenum.SparseHigh, 1)
	assert.Equal(t, uint64(1), tbl.Get(testenum.SparseHigh))
}

func TestIteration(t *testing.T) {
	tbl := enumtable.NewWithFn(func(op testenum.Op) int { return int(op) })

	keys := slices.Collect(tbl.Keys())
	assert.Equal(t, enumtable.VariantsOf[testenum.Op](), keys)
	assert.Equal(t, []int{0, 3, 16, 17, 40, 1000, -2}, slices.Collect(tbl.Values()))

	for k, v := range tbl.All() {
		assert.Equal(t, int(k), v)
	}

	for v := range tbl.ValuesMut() {
		*v *= 10
	}
	assert.Equal(t, -20, tbl.Get(testenum.OpStore))

	for k, v := range tbl.AllMut() {
		if k == testenum.OpJump {
			*v = 0
		}
	}
	assert.Equal(t, 0, tbl.Get(testenum.OpJump))

	// Early break stops the iterator.
	n := 0
	for range tbl.All() {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestPairsIsACopy(t *testing.T) {
	tbl := colorTable()
	pairs := tbl.Pairs()
	require.Len(t, pairs, 3)
	assert.Equal(t, enumtable.Pair[int]{Ordinal: 11, Value: 11}, pairs[0])
	pairs[0].Value = 99
	assert.Equal(t, 11, tbl.Get(testenum.Green))
}

func TestFromSorted(t *testing.T) {
	tbl := enumtable.FromSorted[testenum.Letter]([]enumtable.Pair[string]{
		{Ordinal: enumtable.Of(testenum.LetterB), Value: "b"},
		{Ordinal: enumtable.Of(testenum.LetterC), Value: "c"},
		{Ordinal: enumtable.Of(testenum.LetterA), Value: "a"},
	})
	assert.Equal(t, "a", tbl.Get(testenum.LetterA))
}

func TestTryNewWithFn(t *testing.T) {
	tbl, err := enumtable.TryNewWithFn(func(c testenum.Color) (int, error) {
		return strconv.Atoi(strconv.Itoa(int(c)))
	})
	require.NoError(t, err)
	assert.Equal(t, 222, tbl.Get(testenum.Blue))

	boom := errors.New("boom")
	calls := 0
	_, err = enumtable.TryNewWithFn(func(c testenum.Color) (int, error) {
		calls++
		if c == testenum.Red {
			return 0, boom
		}
		return 1, nil
	})
	require.ErrorIs(t, err, boom)
	var verr *enumtable.VariantError[testenum.Color]
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, testenum.Red, verr.Variant)
	assert.Equal(t, 2, calls, "construction stops at the first error")
	assert.Equal(t, "enumtable: variant Red: boom", err.Error())
}

func TestCheckedNewWithFn(t *testing.T) {
	prices := map[testenum.Color]int{testenum.Red: 1, testenum.Green: 2, testenum.Blue: 3}
	tbl, err := enumtable.CheckedNewWithFn(func(c testenum.Color) (int, bool) {
		v, ok := prices[c]
		return v, ok
	})
	require.NoError(t, err)
	assert.Equal(t, prices, tbl.ToMap())

	delete(prices, testenum.Blue)
	_, err = enumtable.CheckedNewWithFn(func(c testenum.Color) (int, bool) {
		v, ok := prices[c]
		return v, ok
	})
	require.ErrorIs(t, err, enumtable.ErrAbsent)
	var aerr *enumtable.AbsentError[testenum.Color]
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, testenum.Blue, aerr.Variant)
}

func TestTransforms(t *testing.T) {
	tbl := colorTable()
	strs := enumtable.Map(tbl, strconv.Itoa)
	assert.Equal(t, "33", strs.Get(testenum.Red))

	keyed := enumtable.MapWithKey(tbl, func(c testenum.Color, v int) string {
		return c.String() + "=" + strconv.Itoa(v)
	})
	assert.Equal(t, "Green=11", keyed.Get(testenum.Green))

	tbl.MapMut(func(v int) int { return -v })
	assert.Equal(t, -222, tbl.Get(testenum.Blue))

	tbl.MapMutWithKey(func(c testenum.Color, v int) int {
		if c == testenum.Green {
			return 0
		}
		return v
	})
	assert.Equal(t, map[testenum.Color]int{testenum.Green: 0, testenum.Red: -33, testenum.Blue: -222}, tbl.ToMap())
}

func TestFilledZeroNone(t *testing.T) {
	filled := enumtable.NewFilled[testenum.Letter]("x")
	assert.Equal(t, []string{"x", "x", "x"}, slices.Collect(filled.Values()))

	zero := enumtable.NewZero[testenum.Op, float64]()
	assert.Equal(t, 0.0, zero.Get(testenum.OpJump))

	none := enumtable.NewNone[testenum.Color, int]()
	assert.Nil(t, none.Get(testenum.Red))
	n := 4
	none.Set(testenum.Red, &n)
	assert.Equal(t, 4, *none.Get(testenum.Red))
}

func TestCloneEqualHashString(t *testing.T) {
	a := colorTable()
	b := a.Clone()
	assert.True(t, enumtable.TableEqual(a, b))

	b.Set(testenum.Green, 0)
	assert.False(t, enumtable.TableEqual(a, b))
	assert.Equal(t, 11, a.Get(testenum.Green), "clone shares no storage")

	same := enumtable.TableEqualFunc(a, enumtable.Map(a, strconv.Itoa), func(v int, s string) bool {
		return strconv.Itoa(v) == s
	})
	assert.True(t, same)

	seed := maphash.MakeSeed()
	assert.Equal(t, enumtable.Hash(seed, a), enumtable.Hash(seed, a.Clone()))
	assert.NotEqual(t, enumtable.Hash(seed, a), enumtable.Hash(seed, b))

	assert.Equal(t, "{Green: 11, Red: 33, Blue: 222}", a.String())
	assert.Equal(t, "{b: 1, c: 2, a: 3}", enumtable.NewWithFn(func(l testenum.Letter) int {
		return map[testenum.Letter]int{testenum.LetterB: 1, testenum.LetterC: 2, testenum.LetterA: 3}[l]
	}).String())
}

func TestToMapKeys(t *testing.T) {
	m := colorTable().ToMap()
	assert.ElementsMatch(t, enumtable.VariantsOf[testenum.Color](), slices.Collect(maps.Keys(m)))
}

func TestFactoriesMatchBuilder(t *testing.T) {
	b := enumtable.NewBuilder[testenum.Sparse, uint64]()
	for _, s := range enumtable.VariantsOf[testenum.Sparse]() {
		b.Push(s, uint64(s)+1)
	}
	want, err := b.Build()
	require.NoError(t, err)

	plus := func(s testenum.Sparse) uint64 { return uint64(s) + 1 }
	assert.True(t, enumtable.TableEqual(want, enumtable.NewWithFn(plus)))

	tried, err := enumtable.TryNewWithFn(func(s testenum.Sparse) (uint64, error) { return plus(s), nil })
	require.NoError(t, err)
	assert.True(t, enumtable.TableEqual(want, tried))

	checked, err := enumtable.CheckedNewWithFn(func(s testenum.Sparse) (uint64, bool) { return plus(s), true })
	require.NoError(t, err)
	assert.True(t, enumtable.TableEqual(want, checked))
	assert.Equal(t, want.Pairs(), checked.Pairs())
}
