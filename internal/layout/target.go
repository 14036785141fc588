package layout

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"runtime"
	"sort"
	"strings"
)

// Target describes the architecture a discriminant is laid out for.
type Target struct {
	Arch      string // GOARCH spelling, e.g. "amd64"
	PtrSize   int    // bytes
	PtrAlign  int    // bytes
	BigEndian bool
}

// ByteOrder returns the order multi-byte discriminants are stored in.
func (t Target) ByteOrder() binary.ByteOrder {
	if t.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (t Target) String() string {
	order := "le"
	if t.BigEndian {
		order = "be"
	}
	return fmt.Sprintf("%s/%d-bit/%s", t.Arch, t.PtrSize*8, order)
}

var known = map[string]Target{
	"386":      {Arch: "386", PtrSize: 4, PtrAlign: 4},
	"amd64":    {Arch: "amd64", PtrSize: 8, PtrAlign: 8},
	"arm":      {Arch: "arm", PtrSize: 4, PtrAlign: 4},
	"arm64":    {Arch: "arm64", PtrSize: 8, PtrAlign: 8},
	"loong64":  {Arch: "loong64", PtrSize: 8, PtrAlign: 8},
	"mips":     {Arch: "mips", PtrSize: 4, PtrAlign: 4, BigEndian: true},
	"mipsle":   {Arch: "mipsle", PtrSize: 4, PtrAlign: 4},
	"mips64":   {Arch: "mips64", PtrSize: 8, PtrAlign: 8, BigEndian: true},
	"mips64le": {Arch: "mips64le", PtrSize: 8, PtrAlign: 8},
	"ppc64":    {Arch: "ppc64", PtrSize: 8, PtrAlign: 8, BigEndian: true},
	"ppc64le":  {Arch: "ppc64le", PtrSize: 8, PtrAlign: 8},
	"riscv64":  {Arch: "riscv64", PtrSize: 8, PtrAlign: 8},
	"s390x":    {Arch: "s390x", PtrSize: 8, PtrAlign: 8, BigEndian: true},
	"wasm":     {Arch: "wasm", PtrSize: 8, PtrAlign: 8},
}

// Host returns the target the running binary was built for.
func Host() Target {
	if t, ok := known[runtime.GOARCH]; ok {
		return t
	}
	size := bits.UintSize / 8
	return Target{
		Arch:      runtime.GOARCH,
		PtrSize:   size,
		PtrAlign:  size,
		BigEndian: binary.NativeEndian.Uint16([]byte{0, 1}) == 1,
	}
}

// Lookup resolves a GOARCH name; "" and "host" resolve to Host.
func Lookup(arch string) (Target, error) {
	arch = strings.TrimSpace(strings.ToLower(arch))
	if arch == "" || arch == "host" {
		return Host(), nil
	}
	if t, ok := known[arch]; ok {
		return t, nil
	}
	return Target{}, &LayoutError{Kind: LayoutErrUnknownArch, Arch: arch}
}

// Arches lists the architectures Lookup accepts, sorted.
func Arches() []string {
	out := make([]string, 0, len(known))
	for name := range known {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
