package diagfmt

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"enumtable/internal/diag"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     int
	Column   int
	Message  string
}

// FormatShort renders diagnostics one per line in a stable order:
//
//	error DRV1002 enums.go:4:6 Shape has underlying type string
//
// Notes become their own "note" lines when includeNotes is set.
func FormatShort(bag *diag.Bag, base string, includeNotes bool) string {
	if bag == nil || bag.Len() == 0 {
		return ""
	}
	rendered := make([]shortDiagnostic, 0, bag.Len())
	for _, d := range bag.Items() {
		rendered = append(rendered, shortDiagnostic{
			Severity: severityLabel(d.Severity),
			Code:     d.Code.ID(),
			Path:     formatPath(d.Primary.Filename, PathModeAuto, base),
			Line:     d.Primary.Line,
			Column:   d.Primary.Column,
			Message:  sanitizeMessage(d.Message),
		})
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			rendered = append(rendered, shortDiagnostic{
				Severity: "note",
				Code:     d.Code.ID(),
				Path:     formatPath(n.Pos.Filename, PathModeAuto, base),
				Line:     n.Pos.Line,
				Column:   n.Pos.Column,
				Message:  sanitizeMessage(n.Msg),
			})
		}
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Short writes FormatShort output followed by a newline.
func Short(w io.Writer, bag *diag.Bag, base string, includeNotes bool) error {
	s := FormatShort(bag, base, includeNotes)
	if s == "" {
		return nil
	}
	_, err := io.WriteString(w, s+"\n")
	return err
}

func severityLabel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
