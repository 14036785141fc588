package derive

import (
	"go/constant"
	"go/token"
	"strings"
)

// Variant is one constant of an enumeration.
type Variant struct {
	Name    string
	Value   constant.Value
	Raw     uint64 // discriminant bits, two's complement for signed types
	Ordinal uint64
	Label   string // serialized name, set when Options.Names
	Pos     token.Position
}

// Guard returns the constant expression subtracted from the variant in the
// compile-time guard.
func (v Variant) Guard() string {
	s := v.Value.ExactString()
	if strings.HasPrefix(s, "-") {
		return "(" + s + ")"
	}
	return s
}

// Enum is an analysed enumeration ready for rendering.
type Enum struct {
	Name     string
	PkgName  string
	PkgPath  string
	Dir      string
	Pos      token.Position
	Width    int
	Signed   bool
	Variants []Variant // ordinal order
	Aliases  []Alias

	Index    bool
	Names    bool
	Output   string // Options.Output the type was analysed with
	Runtime  string // Options.RuntimeImport
	Receiver string
	GuardVar string
}

// Alias records a constant dropped because an earlier constant had the
// same value.
type Alias struct {
	Name  string
	Of    string
	Value string
	Pos   token.Position
	OfPos token.Position
}

// FileName is the default output file name for the enumeration.
func (e *Enum) FileName() string {
	return strings.ToLower(e.Name) + GeneratedSuffix
}

// VariantNames returns the variant names in ordinal order.
func (e *Enum) VariantNames() []string {
	out := make([]string, len(e.Variants))
	for i, v := range e.Variants {
		out[i] = v.Name
	}
	return out
}
