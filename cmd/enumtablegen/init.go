package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"enumtable/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create an enumtable.toml manifest",
	Long: `Init writes an enumtable.toml listing the enumerations to generate, so
that a bare "enumtablegen gen" regenerates all of them. If [dir] is omitted
the manifest is created in the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("package", ".", "package pattern, relative to the manifest")
	initCmd.Flags().StringSlice("type", nil, "comma-separated enumeration type names")
	initCmd.Flags().Bool("force", false, "overwrite an existing manifest")
}

func runInit(cmd *cobra.Command, args []string) error {
	pkg, err := cmd.Flags().GetString("package")
	if err != nil {
		return fmt.Errorf("failed to get package flag: %w", err)
	}
	typeNames, err := cmd.Flags().GetStringSlice("type")
	if err != nil {
		return fmt.Errorf("failed to get type flag: %w", err)
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}
	typeNames = trimAll(typeNames)
	if len(typeNames) == 0 {
		return fmt.Errorf("init needs at least one --type")
	}

	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	target, err = filepath.Abs(target)
	if err != nil {
		return err
	}
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", manifestPath)
	}
	if err := os.WriteFile(manifestPath, []byte(project.Template(pkg, typeNames)), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	// validate what was written so a bad --type never leaves a broken file behind
	if _, err := project.Load(manifestPath, nil); err != nil {
		_ = os.Remove(manifestPath)
		return err
	}

	rel := manifestPath
	if wd, err := os.Getwd(); err == nil {
		if r, err := filepath.Rel(wd, manifestPath); err == nil {
			rel = r
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", rel)
	return nil
}
