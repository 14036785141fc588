package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"enumtable/internal/derive"
	"enumtable/internal/diag"
	"enumtable/internal/diagfmt"
	"enumtable/internal/driver"
)

func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, flags runFlags, base string) error {
	out := cmd.OutOrStdout()
	pathMode := diagfmt.PathModeAuto
	if flags.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	switch flags.format {
	case "pretty":
		if bag.Len() == 0 {
			return nil
		}
		return diagfmt.Pretty(cmd.ErrOrStderr(), bag, diagfmt.PrettyOpts{
			Color:     flags.color,
			Context:   2,
			PathMode:  pathMode,
			BaseDir:   base,
			ShowNotes: flags.withNotes,
		})
	case "short":
		return diagfmt.Short(out, bag, base, flags.withNotes)
	case "json":
		if err := diagfmt.JSON(out, bag, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			BaseDir:          base,
			IncludeNotes:     flags.withNotes,
		}); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", flags.format)
	}
}

var (
	statusWritten = color.New(color.FgGreen, color.Bold)
	statusStale   = color.New(color.FgRed, color.Bold)
	statusSame    = color.New(color.FgHiBlack)
)

// printOutputs lists the files touched by a run; unchanged files are only
// mentioned in check mode.
func printOutputs(w io.Writer, outputs []driver.Output, base string, check bool) {
	for _, o := range outputs {
		path := o.Path
		if rel, err := filepath.Rel(base, o.Path); err == nil && base != "" {
			path = rel
		}
		switch o.Status {
		case derive.Written:
			fmt.Fprintf(w, "%s %s (%s)\n", statusWritten.Sprint("wrote"), path, strings.Join(o.Types, ", "))
		case derive.Stale:
			fmt.Fprintf(w, "%s %s (%s)\n", statusStale.Sprint("stale"), path, strings.Join(o.Types, ", "))
		case derive.Unchanged:
			if check {
				fmt.Fprintf(w, "%s %s\n", statusSame.Sprint("ok"), path)
			}
		}
	}
}
