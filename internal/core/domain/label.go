package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Label identifies a target in the build graph. The canonical form is
// "//dir/subdir:name", optionally qualified with the toolchain the target
// was instantiated in, as in "//dir:name(//toolchain:gcc)".
//
// Dir always starts with "//" and ends with "/". Toolchain is empty for
// targets in the default toolchain, otherwise it holds the canonical label
// string of the toolchain.
type Label struct {
	Dir       string
	Name      string
	Toolchain string
}

// ParseLabel parses a canonical label string. The name part may be omitted
// when it equals the last directory component ("//foo/bar" means
// "//foo/bar:bar"). A trailing "(//tc:name)" selects a toolchain.
func ParseLabel(s string) (Label, error) {
	var l Label

	rest := s
	if i := strings.IndexByte(rest, '('); i >= 0 {
		if !strings.HasSuffix(rest, ")") {
			return l, zerr.With(ErrInvalidLabel, "label", s)
		}
		tc, err := ParseLabel(rest[i+1 : len(rest)-1])
		if err != nil {
			return l, zerr.With(ErrInvalidLabel, "label", s)
		}
		l.Toolchain = tc.String()
		rest = rest[:i]
	}

	if !strings.HasPrefix(rest, "//") {
		return l, zerr.With(ErrInvalidLabel, "label", s)
	}

	dir := rest
	if i := strings.IndexByte(rest, ':'); i >= 0 {
		dir = rest[:i]
		l.Name = rest[i+1:]
	}

	dir = strings.TrimSuffix(dir, "/")
	if l.Name == "" {
		// Implicit name: the last directory component.
		if i := strings.LastIndexByte(dir, '/'); i >= 0 {
			l.Name = dir[i+1:]
		}
	}
	if l.Name == "" || strings.ContainsAny(l.Name, "/*") {
		return l, zerr.With(ErrInvalidLabel, "label", s)
	}

	l.Dir = dir + "/"
	return l, nil
}

// String returns the canonical "//dir:name" form without the toolchain.
func (l Label) String() string {
	return l.UserVisibleName(false)
}

// UserVisibleName formats the label the way it is shown in messages.
// The toolchain qualifier is appended only when requested and present.
func (l Label) UserVisibleName(includeToolchain bool) string {
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(l.Dir, "/"))
	b.WriteByte(':')
	b.WriteString(l.Name)
	if includeToolchain && l.Toolchain != "" {
		b.WriteByte('(')
		b.WriteString(l.Toolchain)
		b.WriteByte(')')
	}
	return b.String()
}

// ToolchainsEqual reports whether both labels name the same toolchain.
func (l Label) ToolchainsEqual(other Label) bool {
	return l.Toolchain == other.Toolchain
}

// MatchesExceptToolchain reports whether both labels have the same
// directory and name, ignoring the toolchain qualifier.
func (l Label) MatchesExceptToolchain(other Label) bool {
	return l.Dir == other.Dir && l.Name == other.Name
}
