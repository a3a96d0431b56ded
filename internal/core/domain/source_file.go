package domain

import (
	"path"
	"strings"
)

// SourceFile is the canonical identity of a file in the build. The value is
// a source-absolute path like "//base/files/file_util.h"; it is an identity,
// not a filesystem path. Two targets claiming the same path produce the
// same SourceFile.
type SourceFile struct {
	value InternedString
}

// NewSourceFile creates a SourceFile from a canonical path string.
func NewSourceFile(s string) SourceFile {
	return SourceFile{value: NewInternedString(s)}
}

// String returns the canonical path.
func (f SourceFile) String() string {
	return f.value.String()
}

// IsNull reports whether the file names nothing. Null files flow out of
// failed include resolution.
func (f SourceFile) IsNull() bool {
	return f.value.IsZero() || f.value.String() == ""
}

// Dir returns the directory the file lives in, including the trailing slash.
func (f SourceFile) Dir() SourceDir {
	v := f.value.String()
	i := strings.LastIndexByte(v, '/')
	if i < 0 {
		return SourceDir{}
	}
	return NewSourceDir(v[:i+1])
}

// FileKind classifies a source file by extension.
type FileKind int

const (
	// KindUnknown covers everything the checker does not reason about.
	KindUnknown FileKind = iota
	// KindHeader is a C-family header (.h, .hh, .hpp, .hxx, .inc).
	KindHeader
	// KindCSource is a C translation unit (.c).
	KindCSource
	// KindCppSource is a C++ translation unit (.cc, .cpp, .cxx).
	KindCppSource
	// KindObjCSource is an Objective-C translation unit (.m).
	KindObjCSource
	// KindObjCppSource is an Objective-C++ translation unit (.mm).
	KindObjCppSource
	// KindWindowsResource is a Windows resource script (.rc); it has includes too.
	KindWindowsResource
	// KindSwift is a Swift source file (.swift).
	KindSwift
)

// Kind returns the file's kind derived from its extension.
func (f SourceFile) Kind() FileKind {
	switch strings.ToLower(path.Ext(f.value.String())) {
	case ".h", ".hh", ".hpp", ".hxx", ".inc":
		return KindHeader
	case ".c":
		return KindCSource
	case ".cc", ".cpp", ".cxx":
		return KindCppSource
	case ".m":
		return KindObjCSource
	case ".mm":
		return KindObjCppSource
	case ".rc":
		return KindWindowsResource
	case ".swift":
		return KindSwift
	default:
		return KindUnknown
	}
}

// HasIncludes reports whether files of this kind are scanned for include
// directives.
func (k FileKind) HasIncludes() bool {
	switch k {
	case KindHeader, KindCSource, KindCppSource, KindObjCSource,
		KindObjCppSource, KindWindowsResource:
		return true
	default:
		return false
	}
}

// SourceDir is a source-absolute directory like "//base/files/". The value
// always ends with a slash; the empty value is the null directory.
type SourceDir struct {
	value string
}

// NewSourceDir creates a SourceDir, normalizing a missing trailing slash.
func NewSourceDir(s string) SourceDir {
	if s != "" && !strings.HasSuffix(s, "/") {
		s += "/"
	}
	return SourceDir{value: s}
}

// String returns the directory path including the trailing slash.
func (d SourceDir) String() string {
	return d.value
}

// IsNull reports whether the directory names nothing.
func (d SourceDir) IsNull() bool {
	return d.value == ""
}

// ResolveRelativeFile resolves an include literal against this directory,
// producing the canonical SourceFile identity. "." and ".." components are
// folded lexically. A literal that climbs above the source root resolves to
// the null file: nothing in the build can claim it.
func (d SourceDir) ResolveRelativeFile(literal string) SourceFile {
	if d.IsNull() || literal == "" {
		return SourceFile{}
	}
	if rest, ok := strings.CutPrefix(literal, "//"); ok {
		// Already source-absolute; keep the "//" that path.Clean would fold.
		return NewSourceFile("//" + path.Clean(rest))
	}
	if strings.HasPrefix(literal, "/") {
		// System-absolute.
		return NewSourceFile(path.Clean(literal))
	}

	if !strings.HasPrefix(d.value, "//") {
		// System-absolute directory.
		return NewSourceFile(path.Join(d.value, literal))
	}

	joined := path.Join(strings.TrimPrefix(d.value, "//"), literal)
	if joined == ".." || strings.HasPrefix(joined, "../") {
		return SourceFile{}
	}
	return NewSourceFile("//" + joined)
}
