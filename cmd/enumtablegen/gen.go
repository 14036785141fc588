package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"enumtable/internal/derive"
	"enumtable/internal/diag"
	"enumtable/internal/driver"
	"enumtable/internal/layout"
	"enumtable/internal/observ"
	"enumtable/internal/pipeline"
	"enumtable/internal/project"
)

var genCmd = &cobra.Command{
	Use:   "gen [packages...]",
	Short: "Generate variant lists for enumerations",
	Long: `Generate derives the variant list of each --type in the given packages
(default ".") and writes <type>_enumtable.go next to it. Without --type the
types listed in the nearest enumtable.toml are generated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args, false)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [packages...]",
	Short: "Report generated files that are out of date",
	Long: `Check derives the same output as gen but only compares it with the files
on disk. It exits with status 1 when any file is missing or stale.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args, true)
	},
}

func init() {
	for _, c := range []*cobra.Command{genCmd, checkCmd} {
		c.Flags().StringSlice("type", nil, "comma-separated enumeration type names")
		c.Flags().Bool("names", false, "emit String, MarshalText and UnmarshalText")
		c.Flags().String("trim-prefix", "", "prefix removed from variant names when --names is set")
		c.Flags().String("name-case", "as-is", "case of variant names (as-is|lower|upper|title)")
		c.Flags().Bool("index", true, "emit VariantIndex")
		c.Flags().String("output", "", "output file name; all types of a package share it")
		c.Flags().String("runtime", derive.DefaultRuntimeImport, "import path of the enumtable package")
		c.Flags().String("target", "host", "GOARCH whose pointer width bounds discriminants")
		c.Flags().StringSlice("tags", nil, "build tags used when loading packages")
		c.Flags().Int("jobs", 0, "max parallel jobs (0=auto)")
		c.Flags().String("format", "pretty", "diagnostics format (pretty|short|json)")
		c.Flags().Bool("with-notes", false, "include diagnostic notes in output")
		c.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	}
}

type runFlags struct {
	format         string
	withNotes      bool
	fullPath       bool
	maxDiagnostics int
	quiet          bool
	timings        bool
	color          bool
	ui             uiMode
}

func readRunFlags(cmd *cobra.Command) (runFlags, error) {
	var f runFlags
	var err error
	if f.format, err = cmd.Flags().GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch f.format {
	case "pretty", "short", "json":
	default:
		return f, fmt.Errorf("unknown format: %s", f.format)
	}
	if f.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return f, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if f.fullPath, err = cmd.Flags().GetBool("fullpath"); err != nil {
		return f, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	root := cmd.Root().PersistentFlags()
	if f.maxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return f, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if f.quiet, err = root.GetBool("quiet"); err != nil {
		return f, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if f.timings, err = root.GetBool("timings"); err != nil {
		return f, fmt.Errorf("failed to get timings flag: %w", err)
	}
	colorFlag, err := root.GetString("color")
	if err != nil {
		return f, fmt.Errorf("failed to get color flag: %w", err)
	}
	if f.color, err = readColorMode(colorFlag); err != nil {
		return f, err
	}
	uiFlag, err := root.GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readUIMode(uiFlag); err != nil {
		return f, err
	}
	return f, nil
}

// applyOptionFlags overrides opts with the flags set on the command line.
func applyOptionFlags(cmd *cobra.Command, opts derive.Options) (derive.Options, error) {
	flags := cmd.Flags()
	var err error
	if flags.Changed("names") {
		if opts.Names, err = flags.GetBool("names"); err != nil {
			return opts, fmt.Errorf("failed to get names flag: %w", err)
		}
	}
	if flags.Changed("trim-prefix") {
		if opts.TrimPrefix, err = flags.GetString("trim-prefix"); err != nil {
			return opts, fmt.Errorf("failed to get trim-prefix flag: %w", err)
		}
	}
	if flags.Changed("name-case") {
		raw, err := flags.GetString("name-case")
		if err != nil {
			return opts, fmt.Errorf("failed to get name-case flag: %w", err)
		}
		if opts.NameCase, err = derive.ParseNameCase(raw); err != nil {
			return opts, err
		}
	}
	if flags.Changed("index") {
		if opts.Index, err = flags.GetBool("index"); err != nil {
			return opts, fmt.Errorf("failed to get index flag: %w", err)
		}
	}
	if flags.Changed("output") {
		if opts.Output, err = flags.GetString("output"); err != nil {
			return opts, fmt.Errorf("failed to get output flag: %w", err)
		}
	}
	if flags.Changed("runtime") {
		if opts.RuntimeImport, err = flags.GetString("runtime"); err != nil {
			return opts, fmt.Errorf("failed to get runtime flag: %w", err)
		}
	}
	if flags.Changed("target") {
		raw, err := flags.GetString("target")
		if err != nil {
			return opts, fmt.Errorf("failed to get target flag: %w", err)
		}
		if opts.Target, err = layout.Lookup(raw); err != nil {
			return opts, fmt.Errorf("invalid --target: %w", err)
		}
	}
	return opts, nil
}

// buildRequest assembles the driver request from flags and, when no
// --type is given or a manifest is found, from enumtable.toml.
func buildRequest(cmd *cobra.Command, args []string, rep diag.Reporter) (driver.Request, error) {
	var req driver.Request
	typeNames, err := cmd.Flags().GetStringSlice("type")
	if err != nil {
		return req, fmt.Errorf("failed to get type flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return req, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	tags, err := cmd.Flags().GetStringSlice("tags")
	if err != nil {
		return req, fmt.Errorf("failed to get tags flag: %w", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return req, err
	}
	manifest, found, err := project.Discover(wd, rep)
	if err != nil {
		return req, err
	}

	base := derive.DefaultOptions()
	if found {
		if base, err = manifest.Options(base); err != nil {
			return req, fmt.Errorf("%s: %w", manifest.Path, err)
		}
	}

	switch {
	case len(typeNames) > 0:
		opts, err := applyOptionFlags(cmd, base)
		if err != nil {
			return req, err
		}
		patterns := args
		if len(patterns) == 0 {
			patterns = []string{"."}
		}
		req.Dir = wd
		req.Groups = []driver.Group{{Patterns: patterns, Types: trimAll(typeNames), Options: opts}}
	case found:
		if len(args) > 0 {
			return req, fmt.Errorf("packages given without --type; %s lists the packages to generate", manifest.Path)
		}
		groups, err := driver.FromManifest(manifest, derive.DefaultOptions())
		if err != nil {
			return req, fmt.Errorf("%s: %w", manifest.Path, err)
		}
		for i := range groups {
			if groups[i].Options, err = applyOptionFlags(cmd, groups[i].Options); err != nil {
				return req, err
			}
		}
		req.Dir = manifest.Root
		req.Groups = groups
	default:
		return req, fmt.Errorf("no --type given and no %s found\nplease name the types explicitly, e.g.:\n  enumtablegen gen --type Color ./colors", project.ManifestName)
	}

	req.Jobs = jobs
	req.Tags = tags
	if found {
		if !cmd.Flags().Changed("jobs") {
			req.Jobs = manifest.Config.Generate.Jobs
		}
		if !cmd.Flags().Changed("tags") {
			req.Tags = manifest.Config.Generate.Tags
		}
	}
	return req, nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func runGenerate(cmd *cobra.Command, args []string, check bool) error {
	flags, err := readRunFlags(cmd)
	if err != nil {
		return err
	}
	bag := diag.NewBag(flags.maxDiagnostics)
	rep := diag.BagReporter{Bag: bag}

	req, err := buildRequest(cmd, args, rep)
	if err != nil {
		if bag.Len() > 0 {
			_ = printDiagnostics(cmd, bag, flags, "")
		}
		return err
	}
	req.Check = check
	req.Timer = observ.NewTimer()
	req.Timings = &pipeline.Timings{}

	title := "enumtablegen " + cmd.Name()
	var res *driver.Result
	if shouldUseTUI(flags.ui, flags.quiet) {
		res, err = runGenerateWithUI(cmd.Context(), title, nil, req, rep)
	} else {
		res, err = driver.Generate(cmd.Context(), req, rep)
	}
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if flags.timings && flags.format == "json" {
		driver.AppendTimings(bag, req.Timer, req.Dir)
	}
	bag.Sort()
	if err := printDiagnostics(cmd, bag, flags, req.Dir); err != nil {
		return err
	}
	if !flags.quiet && flags.format != "json" {
		printOutputs(cmd.OutOrStdout(), res.Outputs, req.Dir, check)
	}
	if flags.timings && flags.format != "json" {
		printStageTimings(cmd.ErrOrStderr(), req.Timings)
		fmt.Fprint(cmd.ErrOrStderr(), req.Timer.Summary())
	}
	if n := bag.Count(diag.SevError); n > 0 {
		return fmt.Errorf("%s failed with %d error(s)", cmd.Name(), n)
	}
	return nil
}
