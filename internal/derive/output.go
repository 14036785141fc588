package derive

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"

	"enumtable/internal/diag"
)

// Plan groups analysed enumerations into output files. Without
// Options.Output every type gets its own file next to its package;
// otherwise all types of a package share the named file.
func Plan(enums []*Enum, opts Options, rep diag.Reporter) []*File {
	if opts.Output == "" {
		files := make([]*File, 0, len(enums))
		for _, e := range enums {
			files = append(files, &File{
				Path:          filepath.Join(e.Dir, e.FileName()),
				Package:       e.PkgName,
				PkgPath:       e.PkgPath,
				RuntimeImport: opts.RuntimeImport,
				Enums:         []*Enum{e},
			})
		}
		return files
	}

	var files []*File
	byPkg := make(map[string]*File)
	for _, e := range enums {
		f, ok := byPkg[e.PkgPath]
		if !ok {
			p := opts.Output
			if !filepath.IsAbs(p) {
				p = filepath.Join(e.Dir, p)
			}
			f = &File{Path: p, Package: e.PkgName, PkgPath: e.PkgPath, RuntimeImport: opts.RuntimeImport}
			byPkg[e.PkgPath] = f
			files = append(files, f)
		}
		f.Enums = append(f.Enums, e)
	}
	if filepath.IsAbs(opts.Output) && len(files) > 1 {
		diag.ReportError(rep, diag.LoadMixedOutput, token.Position{Filename: opts.Output},
			fmt.Sprintf("--output %s is shared by %d packages; use a relative name", opts.Output, len(files))).
			WithNote(files[0].Enums[0].Pos, files[0].PkgPath).
			WithNote(files[1].Enums[0].Pos, files[1].PkgPath).
			Emit()
		return nil
	}
	return files
}

// WriteStatus describes what happened to one output file.
type WriteStatus uint8

const (
	Unchanged WriteStatus = iota
	Written
	Stale
)

func (s WriteStatus) String() string {
	switch s {
	case Unchanged:
		return "unchanged"
	case Written:
		return "written"
	case Stale:
		return "stale"
	default:
		return fmt.Sprintf("WriteStatus(%d)", s)
	}
}

// Write stores src at path when it differs from what is on disk. In check
// mode nothing is written and a difference is reported as Stale.
func Write(path string, src []byte, check bool) (WriteStatus, error) {
	old, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(old, src):
		return Unchanged, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return Unchanged, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if check {
		return Stale, nil
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, src, 0o644); err != nil {
		return Unchanged, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return Unchanged, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return Written, nil
}
