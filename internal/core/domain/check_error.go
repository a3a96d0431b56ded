package domain

import (
	"fmt"
	"strings"
)

// ErrorKind classifies an include-check violation.
type ErrorKind int

const (
	// SourceFileNotFound means a claimed source file could not be read and
	// is not inside the output tree.
	SourceFileNotFound ErrorKind = iota
	// PrivateHeader means a reachable target claims the header but not as
	// a public header, and no friend clause applies.
	PrivateHeader
	// NonPublicChain means the header is public in its target but every
	// chain from the includer traverses a non-public edge after the first hop.
	NonPublicChain
	// Unreachable means no reachable target claims the header.
	Unreachable
)

// String returns a short name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case SourceFileNotFound:
		return "source-file-not-found"
	case PrivateHeader:
		return "private-header"
	case NonPublicChain:
		return "non-public-chain"
	case Unreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// InputFile is a named, persistent copy of a checked file's contents.
// Locations embedded in errors point at InputFiles whose bytes outlive the
// task that produced them.
type InputFile struct {
	Name     string
	Contents []byte
}

// Location is a 1-based line/column position inside an InputFile.
type Location struct {
	Line   int
	Column int
}

// LocationRange is a half-open range inside one InputFile. A nil File
// means the error has no source position (for example a missing file).
type LocationRange struct {
	File  *InputFile
	Begin Location
	End   Location
}

// CheckError is one include-check violation. It implements error, but is
// carried around as a structured value so callers can count, classify and
// render violations themselves.
type CheckError struct {
	Kind  ErrorKind
	Where LocationRange
	Title string
	Body  string
}

// Error implements the error interface.
func (e *CheckError) Error() string {
	var b strings.Builder
	b.WriteString("ERROR")
	if e.Where.File != nil {
		fmt.Fprintf(&b, " at %s:%d:%d", e.Where.File.Name, e.Where.Begin.Line, e.Where.Begin.Column)
	}
	b.WriteString(": ")
	b.WriteString(e.Title)
	if e.Body != "" {
		b.WriteByte('\n')
		b.WriteString(e.Body)
	}
	return b.String()
}
