package diagfmt

import (
	"bytes"
	"go/token"
	"strings"
	"testing"

	"enumtable/internal/diag"
)

const enumSource = "package shapes\n\ntype Shape string\n\nconst (\n\tCircle Shape = \"circle\"\n)\n"

func sampleBag() *diag.Bag {
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(
		diag.DeriveNotInteger,
		token.Position{Filename: "/home/user/project/shapes/shapes.go", Line: 3, Column: 6, Offset: 21},
		"Shape has underlying type string",
	).WithNote(
		token.Position{Filename: "/home/user/project/shapes/shapes.go", Line: 6, Column: 2, Offset: 40},
		"Circle declared here",
	))
	return bag
}

func readFake(path string) ([]byte, error) {
	return []byte(enumSource), nil
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{name: "Absolute path", mode: PathModeAbsolute, contains: "/home/user/project/shapes/shapes.go:3:6"},
		{name: "Relative path", mode: PathModeRelative, contains: "shapes/shapes.go:3:6"},
		{name: "Basename only", mode: PathModeBasename, contains: "shapes.go:3:6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Pretty(&buf, sampleBag(), PrettyOpts{
				PathMode: tt.mode,
				BaseDir:  "/home/user/project",
				Source:   readFake,
			})
			if err != nil {
				t.Fatalf("Pretty: %v", err)
			}
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("output does not contain %q:\n%s", tt.contains, buf.String())
			}
		})
	}
}

func TestPrettyCaretAndNotes(t *testing.T) {
	var buf bytes.Buffer
	err := Pretty(&buf, sampleBag(), PrettyOpts{
		PathMode:  PathModeRelative,
		BaseDir:   "/home/user/project",
		ShowNotes: true,
		Source:    readFake,
	})
	if err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := "shapes/shapes.go:3:6: ERROR DRV1002: Shape has underlying type string\n" +
		" 3 | type Shape string\n" +
		"   |      ^\n" +
		"  note: shapes/shapes.go:6:2: Circle declared here\n"
	if got := buf.String(); got != want {
		t.Errorf("Pretty output mismatch\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestPrettyContextLines(t *testing.T) {
	var buf bytes.Buffer
	err := Pretty(&buf, sampleBag(), PrettyOpts{
		PathMode: PathModeBasename,
		Context:  1,
		Source:   readFake,
	})
	if err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	for _, line := range []string{" 2 | ", " 3 | type Shape string", " 4 | "} {
		if !strings.Contains(buf.String(), line) {
			t.Errorf("missing context line %q in:\n%s", line, buf.String())
		}
	}
}

func TestPrettyColorToggle(t *testing.T) {
	var plain, colored bytes.Buffer
	_ = Pretty(&plain, sampleBag(), PrettyOpts{Source: readFake})
	_ = Pretty(&colored, sampleBag(), PrettyOpts{Color: true, Source: readFake})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("plain output contains escape codes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("colored output has no escape codes: %q", colored.String())
	}
}

func TestFormatShort(t *testing.T) {
	bag := sampleBag()
	bag.Add(diag.New(diag.SevWarning, diag.VarDuplicate,
		token.Position{Filename: "/home/user/project/shapes/shapes.go", Line: 1, Column: 1},
		"Alias\nduplicates Circle"))
	got := FormatShort(bag, "/home/user/project", true)
	want := "warning VAR2001 shapes/shapes.go:1:1 Alias duplicates Circle\n" +
		"error DRV1002 shapes/shapes.go:3:6 Shape has underlying type string\n" +
		"note DRV1002 shapes/shapes.go:6:2 Circle declared here"
	if got != want {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}
