package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// PatternType describes how a LabelPattern matches labels.
type PatternType int

const (
	// PatternMatch matches one label exactly.
	PatternMatch PatternType = iota
	// PatternDirectory matches every target in one directory.
	PatternDirectory
	// PatternRecursiveDirectory matches every target under a directory.
	PatternRecursiveDirectory
)

// LabelPattern matches sets of labels. Patterns appear in friend lists and
// anywhere a target names "those other targets over there".
//
// Supported canonical forms:
//
//	//foo/bar:baz  matches exactly that target
//	//foo/bar:*    matches every target in //foo/bar/
//	//foo/bar/*    matches every target in //foo/bar/ and below
//	*              matches everything
//
// Any form may carry a "(//toolchain)" suffix restricting matches to that
// toolchain; without it, targets in every toolchain match.
type LabelPattern struct {
	Type      PatternType
	Dir       string
	Name      string
	Toolchain string
}

// ParseLabelPattern parses a canonical pattern string.
func ParseLabelPattern(s string) (LabelPattern, error) {
	var p LabelPattern

	rest := s
	if i := strings.IndexByte(rest, '('); i >= 0 {
		if !strings.HasSuffix(rest, ")") {
			return p, zerr.With(ErrInvalidLabelPattern, "pattern", s)
		}
		tcStr := rest[i+1 : len(rest)-1]
		if strings.ContainsRune(tcStr, '*') {
			return p, zerr.With(ErrInvalidLabelPattern, "pattern", s)
		}
		tc, err := ParseLabel(tcStr)
		if err != nil {
			return p, zerr.With(ErrInvalidLabelPattern, "pattern", s)
		}
		p.Toolchain = tc.String()
		rest = rest[:i]
	}

	if rest == "*" || rest == "*:*" {
		p.Type = PatternRecursiveDirectory
		return p, nil
	}

	if !strings.HasPrefix(rest, "//") {
		return p, zerr.With(ErrInvalidLabelPattern, "pattern", s)
	}

	switch {
	case strings.HasSuffix(rest, "/*"), strings.HasSuffix(rest, "/*:*"):
		// "//foo/*" and the fully spelled "//foo/*:*" are equivalent.
		rest = strings.TrimSuffix(rest, ":*")
		p.Type = PatternRecursiveDirectory
		p.Dir = strings.TrimSuffix(rest, "*")
	case strings.HasSuffix(rest, ":*"):
		p.Type = PatternDirectory
		p.Dir = strings.TrimSuffix(strings.TrimSuffix(rest, ":*"), "/") + "/"
	default:
		l, err := ParseLabel(rest)
		if err != nil {
			return p, zerr.With(ErrInvalidLabelPattern, "pattern", s)
		}
		p.Type = PatternMatch
		p.Dir = l.Dir
		p.Name = l.Name
	}

	// Wildcards are only valid in the positions consumed above.
	if strings.ContainsRune(p.Dir, '*') || strings.ContainsRune(p.Name, '*') {
		return p, zerr.With(ErrInvalidLabelPattern, "pattern", s)
	}

	return p, nil
}

// Matches reports whether the pattern matches the given label.
func (p LabelPattern) Matches(l Label) bool {
	if p.Toolchain != "" && p.Toolchain != l.Toolchain {
		return false
	}
	switch p.Type {
	case PatternMatch:
		return p.Dir == l.Dir && p.Name == l.Name
	case PatternDirectory:
		return p.Dir == l.Dir
	case PatternRecursiveDirectory:
		return strings.HasPrefix(l.Dir, p.Dir)
	}
	return false
}

// PatternsMatch reports whether any pattern in the list matches the label.
// The list order is irrelevant.
func PatternsMatch(patterns []LabelPattern, l Label) bool {
	for _, p := range patterns {
		if p.Matches(l) {
			return true
		}
	}
	return false
}
