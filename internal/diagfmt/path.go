package diagfmt

import (
	"path/filepath"
	"strings"
)

func formatPath(path string, mode PathMode, base string) string {
	if path == "" {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return filepath.ToSlash(abs)
		}
		return filepath.ToSlash(path)
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeRelative:
		return relativeTo(path, base, true)
	default:
		return relativeTo(path, base, false)
	}
}

func relativeTo(path, base string, force bool) string {
	if base == "" {
		return normalizePath(path)
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return normalizePath(path)
	}
	rel = filepath.ToSlash(rel)
	if !force && strings.HasPrefix(rel, "../") {
		return normalizePath(path)
	}
	return normalizePath(rel)
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}
