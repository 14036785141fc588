package enumtable

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"fortio.org/safecast"

	"enumtable/internal/layout"
)

// Discriminant is the set of integer kinds an enumeration may be declared over.
type Discriminant interface {
	safecast.Integer
}

// Ordinal is a discriminant reinterpreted as an unsigned integer of its own
// width and widened to the platform word. Ordinals define the order of
// variants inside a table.
type Ordinal uint

var host = layout.Host()

// Width returns the size in bytes of K's discriminant.
func Width[K Discriminant]() int {
	var k K
	return int(unsafe.Sizeof(k))
}

func mustWidth(width int) {
	if err := host.CheckWidth(width); err != nil {
		panic(fmt.Errorf("enumtable: %w", err))
	}
}

// Of returns the ordinal of k. It panics for 8-byte discriminants on 32-bit
// platforms.
func Of[K Discriminant](k K) Ordinal {
	switch unsafe.Sizeof(k) {
	case 1:
		return Ordinal(uint8(k))
	case 2:
		return Ordinal(uint16(k))
	case 4:
		return Ordinal(uint32(k))
	case 8:
		mustWidth(8)
		return Ordinal(uint64(k))
	default:
		mustWidth(int(unsafe.Sizeof(k)))
		panic("unreachable")
	}
}

// Variant converts an ordinal back into a discriminant of type K. Bits above
// K's width are discarded.
func Variant[K Discriminant](o Ordinal) K {
	return K(o)
}

// Truncate keeps the low width bytes of raw. It is the host-independent form
// of Of, used when ordinals are computed for another target.
func Truncate(raw uint64, width int) uint64 {
	switch width {
	case 1:
		return raw & 0xff
	case 2:
		return raw & 0xffff
	case 4:
		return raw & 0xffff_ffff
	case 8:
		return raw
	default:
		panic(fmt.Errorf("enumtable: %w", &layout.LayoutError{Kind: layout.LayoutErrUnsupportedWidth, Width: width}))
	}
}

// Widen converts the raw bits of a width-byte discriminant into an ordinal.
func Widen(raw uint64, width int) Ordinal {
	mustWidth(width)
	return Ordinal(Truncate(raw, width))
}

// Reinterpret reads the raw bytes of a discriminant stored in host byte
// order. The discriminant width is len(raw).
func Reinterpret(raw []byte) Ordinal {
	switch len(raw) {
	case 1:
		return Ordinal(raw[0])
	case 2:
		return Ordinal(binary.NativeEndian.Uint16(raw))
	case 4:
		return Ordinal(binary.NativeEndian.Uint32(raw))
	case 8:
		mustWidth(8)
		return Ordinal(binary.NativeEndian.Uint64(raw))
	default:
		mustWidth(len(raw))
		panic("unreachable")
	}
}

// FromWord reads a width-byte discriminant that was stored into a
// word-sized slot. On big-endian hosts the discriminant occupies the last
// width bytes of the word.
func FromWord(word []byte, width int) Ordinal {
	if width > len(word) {
		panic(fmt.Sprintf("enumtable: discriminant width %d exceeds word size %d", width, len(word)))
	}
	off := 0
	if host.BigEndian {
		off = len(word) - width
	}
	return Reinterpret(word[off : off+width])
}

// Bytes returns the raw discriminant bytes of k in host byte order.
func Bytes[K Discriminant](k K) []byte {
	out := make([]byte, unsafe.Sizeof(k))
	switch len(out) {
	case 1:
		out[0] = uint8(k)
	case 2:
		binary.NativeEndian.PutUint16(out, uint16(k))
	case 4:
		binary.NativeEndian.PutUint32(out, uint32(k))
	case 8:
		binary.NativeEndian.PutUint64(out, uint64(k))
	default:
		mustWidth(len(out))
	}
	return out
}

// Equal reports whether a and b have the same discriminant bits.
func Equal[K Discriminant](a, b K) bool {
	return Of(a) == Of(b)
}

// Less orders a and b by ordinal.
func Less[K Discriminant](a, b K) bool {
	return Of(a) < Of(b)
}

// Compare returns -1, 0 or +1 comparing a and b by ordinal.
func Compare[K Discriminant](a, b K) int {
	oa, ob := Of(a), Of(b)
	switch {
	case oa < ob:
		return -1
	case oa > ob:
		return 1
	default:
		return 0
	}
}
