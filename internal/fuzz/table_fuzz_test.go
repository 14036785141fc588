package fuzztests

import (
	"testing"

	"enumtable"
	"enumtable/internal/testenum"
	"enumtable/internal/testkit"
)

func FuzzKeyedBuilderOrder(f *testing.F) {
	addOrderSeeds(f)
	f.Fuzz(func(t *testing.T, order []byte) {
		order = clamp(order)
		variants := testenum.Op(0).Variants()
		want := make(map[testenum.Op]int, len(variants))

		b := enumtable.NewKeyedBuilder[testenum.Op, int]()
		for i, c := range order {
			k := variants[int(c)%len(variants)]
			_, replaced := b.Insert(k, i)
			if _, had := want[k]; had != replaced {
				t.Fatalf("Insert(%v) replaced = %v, want %v", k, replaced, had)
			}
			want[k] = i
		}
		if b.Len() != len(want) {
			t.Fatalf("Len = %d, want %d", b.Len(), len(want))
		}
		if missing, ok := b.Missing(); ok {
			if _, err := b.Build(); err == nil {
				t.Fatalf("Build succeeded with %v missing", missing)
			}
			for _, k := range variants {
				if _, had := want[k]; !had {
					b.Insert(k, -1)
					want[k] = -1
				}
			}
		}

		table, err := b.Build()
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if err := testkit.CheckTable(table); err != nil {
			t.Fatal(err)
		}
		for k, v := range want {
			if got := table.Get(k); got != v {
				t.Fatalf("Get(%v) = %d, want %d", k, got, v)
			}
		}
	})
}

func FuzzFromSliceShuffled(f *testing.F) {
	addOrderSeeds(f)
	f.Fuzz(func(t *testing.T, seed []byte) {
		seed = clamp(seed)
		variants := testenum.Op(0).Variants()
		entries := make([]enumtable.Entry[testenum.Op, string], len(variants))
		for i, j := range permutation(len(variants), seed) {
			k := variants[j]
			entries[i] = enumtable.Entry[testenum.Op, string]{Key: k, Value: enumtable.Name(k)}
		}

		table, err := enumtable.FromSlice(entries)
		if err != nil {
			t.Fatalf("FromSlice: %v", err)
		}
		for _, k := range variants {
			if got := table.Get(k); got != enumtable.Name(k) {
				t.Fatalf("Get(%v) = %q", k, got)
			}
		}
		if err := testkit.CheckRoundTrip(table); err != nil {
			t.Fatal(err)
		}

		// Dropping an entry is a size error, duplicating one a missing variant.
		short := entries[:len(entries)-1]
		if _, err := enumtable.FromSlice(short); err == nil {
			t.Fatalf("FromSlice accepted %d entries", len(short))
		}
		dup := append([]enumtable.Entry[testenum.Op, string](nil), entries...)
		dup[0] = dup[len(dup)-1]
		if _, err := enumtable.FromSlice(dup); err == nil {
			t.Fatalf("FromSlice accepted a duplicate of %v", dup[0].Key)
		}
	})
}

func FuzzParseName(f *testing.F) {
	for _, s := range []string{"a", "b", " c ", "C", "100", "20", "LetterA", "", "é"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, name string) {
		k, err := enumtable.ParseName[testenum.Letter](name)
		if err != nil {
			return
		}
		again, err := enumtable.ParseName[testenum.Letter](enumtable.Name(k))
		if err != nil || again != k {
			t.Fatalf("ParseName(Name(%v)) = %v, %v", k, again, err)
		}
		if k.VariantIndex() < 0 {
			t.Fatalf("ParseName(%q) returned non-variant %d", name, int(k))
		}
	})
}
