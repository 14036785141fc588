// Package driver runs enumtablegen: it loads packages, derives the
// requested enumerations in parallel and renders, writes or checks the
// generated files.
package driver

import (
	"enumtable/internal/derive"
	"enumtable/internal/observ"
	"enumtable/internal/pipeline"
	"enumtable/internal/project"
)

// Group is a set of types generated with the same options.
type Group struct {
	Patterns []string
	Types    []string
	Options  derive.Options
}

// Request describes one generator run.
type Request struct {
	// Dir is the directory package patterns are resolved against.
	Dir    string
	Groups []Group
	Tags   []string
	// Jobs bounds the number of concurrent jobs; zero uses GOMAXPROCS.
	Jobs int
	// Check compares instead of writing and reports stale files.
	Check    bool
	Progress pipeline.ProgressSink
	Timer    *observ.Timer
	// Timings, when set, accumulates per-stage durations across jobs.
	Timings *pipeline.Timings
}

// Output is the outcome for one generated file.
type Output struct {
	Path   string
	Types  []string
	Status derive.WriteStatus
}

// Result collects the outcome of Generate.
type Result struct {
	Outputs []Output
	Enums   []*derive.Enum
}

// FromManifest builds the groups of m, with base supplying the defaults
// the manifest does not set.
func FromManifest(m *project.Manifest, base derive.Options) ([]Group, error) {
	opts, err := m.Options(base)
	if err != nil {
		return nil, err
	}
	groups := make([]Group, 0, len(m.Config.Types))
	for _, spec := range m.Config.Types {
		o, err := spec.Apply(opts)
		if err != nil {
			return nil, err
		}
		groups = append(groups, Group{
			Patterns: []string{spec.Package},
			Types:    append([]string(nil), spec.Types...),
			Options:  o,
		})
	}
	return groups, nil
}
