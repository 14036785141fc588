package version

import (
	"runtime"
	"runtime/debug"

	"github.com/fatih/color"
)

// Version information for the enumtablegen CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = "0.3.0"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Info is the machine-readable form printed by `enumtablegen version --format json`.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
	Module    string `json:"module,omitempty"`
}

// Current collects version information, falling back to the module's
// VCS stamp when GitCommit was not set via -ldflags.
func Current() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.Module = bi.Main.Path
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = s.Value
				}
			case "vcs.time":
				if info.BuildDate == "" {
					info.BuildDate = s.Value
				}
			}
		}
	}
	return info
}

// Colored renders a semantic version with each component highlighted.
// Non-semver strings are returned unchanged.
func Colored(v string) string {
	var parts [3]string
	n, start := 0, 0
	for i := 0; i <= len(v) && n < 3; i++ {
		if i == len(v) || v[i] == '.' || (n == 2 && (v[i] == '-' || v[i] == '+')) {
			parts[n] = v[start:i]
			n++
			start = i + 1
			if i < len(v) && v[i] != '.' {
				start = i
				break
			}
		}
	}
	if n < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return v
	}
	rest := ""
	if end := len(parts[0]) + len(parts[1]) + len(parts[2]) + 2; end < len(v) {
		rest = v[end:]
	}
	return versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(parts[2]) + rest
}
