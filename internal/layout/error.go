package layout

import "fmt"

// LayoutErrorKind enumerates discriminant layout failures.
type LayoutErrorKind uint8

const (
	// LayoutErrUnknownArch indicates an architecture name Lookup does not know.
	LayoutErrUnknownArch LayoutErrorKind = iota + 1
	// LayoutErrUnsupportedWidth indicates a discriminant wider than 64 bits
	// or of a width that is not a power of two.
	LayoutErrUnsupportedWidth
	// LayoutErrWideDiscriminant indicates an 8-byte discriminant on a
	// target whose pointer-width ordinal is 4 bytes.
	LayoutErrWideDiscriminant
)

// LayoutError represents a discriminant that cannot be laid out for a target.
type LayoutError struct {
	Kind   LayoutErrorKind
	Arch   string
	Width  int // discriminant width in bytes
	Target Target
}

func (e *LayoutError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case LayoutErrUnknownArch:
		return fmt.Sprintf("unknown target architecture %q", e.Arch)
	case LayoutErrUnsupportedWidth:
		if e.Width > 8 {
			return fmt.Sprintf("discriminants wider than 64 bits are not supported (%d bytes)", e.Width)
		}
		return fmt.Sprintf("unsupported discriminant width: %d bytes", e.Width)
	case LayoutErrWideDiscriminant:
		return fmt.Sprintf("64-bit discriminants are not supported on %s", e.Target)
	default:
		return fmt.Sprintf("layout error kind=%d width=%d", e.Kind, e.Width)
	}
}

// CheckWidth reports whether a discriminant of width bytes fits the
// target's ordinal.
func (t Target) CheckWidth(width int) error {
	switch width {
	case 1, 2, 4:
		return nil
	case 8:
		if t.PtrSize < 8 {
			return &LayoutError{Kind: LayoutErrWideDiscriminant, Width: width, Target: t}
		}
		return nil
	default:
		return &LayoutError{Kind: LayoutErrUnsupportedWidth, Width: width, Target: t}
	}
}
