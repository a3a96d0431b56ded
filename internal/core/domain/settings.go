package domain

import (
	"path/filepath"
	"strings"
)

// BuildSettings holds the paths the checker needs to move between the
// source-absolute name space and the real filesystem.
type BuildSettings struct {
	// RootDir is the absolute filesystem path of the source root, the
	// directory "//" refers to.
	RootDir string

	// BuildDir is the source-absolute output directory, e.g. "//out/".
	// Generated files live under it.
	BuildDir string
}

// IsInBuildDir reports whether the file is inside the output tree.
func (s *BuildSettings) IsInBuildDir(f SourceFile) bool {
	return strings.HasPrefix(f.String(), s.BuildDir)
}

// FullPath maps a source-absolute identity to a filesystem path.
func (s *BuildSettings) FullPath(f SourceFile) string {
	v := f.String()
	if rel, ok := strings.CutPrefix(v, "//"); ok {
		return filepath.Join(s.RootDir, filepath.FromSlash(rel))
	}
	return filepath.FromSlash(v)
}
