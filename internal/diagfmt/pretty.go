package diagfmt

import (
	"bytes"
	"fmt"
	"go/token"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"enumtable/internal/diag"
)

type palette struct {
	err, warn, info, note, loc, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgBlue, color.Bold),
		loc:    mk(color.Bold),
		gutter: mk(color.FgHiBlack),
		caret:  mk(color.FgGreen, color.Bold),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с кареткой ^ под колонкой, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	src := newSourceCache(opts.Source)
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	var buf bytes.Buffer
	for i, d := range items {
		if i > 0 {
			buf.WriteByte('\n')
		}
		header := fmt.Sprintf("%s: %s %s: %s",
			p.loc.Sprint(location(d.Primary, opts.PathMode, opts.BaseDir)),
			p.severity(d.Severity).Sprint(d.Severity.String()),
			d.Code.ID(),
			d.Message)
		buf.WriteString(clip(header, opts.Width))
		buf.WriteByte('\n')
		writeContext(&buf, p, src, d.Primary, int(opts.Context))
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(&buf, "  %s %s: %s\n",
				p.note.Sprint("note:"),
				location(n.Pos, opts.PathMode, opts.BaseDir),
				n.Msg)
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func location(pos token.Position, mode PathMode, base string) string {
	path := formatPath(pos.Filename, mode, base)
	if pos.Line == 0 {
		return path
	}
	return path + ":" + strconv.Itoa(pos.Line) + ":" + strconv.Itoa(pos.Column)
}

func writeContext(buf *bytes.Buffer, p palette, src *sourceCache, pos token.Position, context int) {
	if pos.Filename == "" || pos.Line <= 0 {
		return
	}
	lines, ok := src.lines(pos.Filename)
	if !ok || pos.Line > len(lines) {
		return
	}
	first := max(1, pos.Line-context)
	last := min(len(lines), pos.Line+context)
	gutterWidth := len(strconv.Itoa(last))
	for n := first; n <= last; n++ {
		line := expandTabs(lines[n-1])
		fmt.Fprintf(buf, " %s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, n), line)
		if n != pos.Line {
			continue
		}
		prefix := lines[n-1]
		if col := pos.Column - 1; col >= 0 && col <= len(prefix) {
			prefix = prefix[:col]
		}
		pad := runewidth.StringWidth(expandTabs(prefix))
		fmt.Fprintf(buf, " %s %s%s\n", p.gutter.Sprint(strings.Repeat(" ", gutterWidth)+" |"),
			strings.Repeat(" ", pad), p.caret.Sprint("^"))
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func clip(s string, width uint8) string {
	if width == 0 {
		return s
	}
	return runewidth.Truncate(s, int(width), "…")
}

type sourceCache struct {
	read  func(string) ([]byte, error)
	files map[string][]string
}

func newSourceCache(read func(string) ([]byte, error)) *sourceCache {
	if read == nil {
		read = os.ReadFile
	}
	return &sourceCache{read: read, files: make(map[string][]string)}
}

func (c *sourceCache) lines(path string) ([]string, bool) {
	if ls, ok := c.files[path]; ok {
		return ls, ls != nil
	}
	data, err := c.read(path)
	if err != nil {
		c.files[path] = nil
		return nil, false
	}
	ls := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	c.files[path] = ls
	return ls, true
}
