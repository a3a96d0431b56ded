// Package scanner finds lexical #include directives in C-family sources.
package scanner

import (
	"bytes"
	"iter"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
)

var _ ports.IncludeScanner = (*CScanner)(nil)

// CScanner implements ports.IncludeScanner for C, C++, Objective-C and
// resource-script sources. It works line by line and does not evaluate the
// preprocessor: an include inside a false #if is still reported, which is
// exactly what the checker wants (and tolerates downstream).
type CScanner struct{}

// New creates a new CScanner.
func New() *CScanner {
	return &CScanner{}
}

// Scan returns a lazy sequence over the include directives in contents.
// Iteration may stop early; no state is kept between calls.
func (s *CScanner) Scan(contents []byte) iter.Seq[ports.Include] {
	return func(yield func(ports.Include) bool) {
		line := 0
		for len(contents) > 0 {
			line++
			var cur []byte
			if i := bytes.IndexByte(contents, '\n'); i >= 0 {
				cur = contents[:i]
				contents = contents[i+1:]
			} else {
				cur = contents
				contents = nil
			}

			inc, ok := scanLine(cur, line)
			if !ok {
				continue
			}
			if !yield(inc) {
				return
			}
		}
	}
}

// scanLine extracts an include directive from one line, if present.
func scanLine(line []byte, lineNo int) (ports.Include, bool) {
	rest := bytes.TrimLeft(line, " \t")
	if len(rest) == 0 || rest[0] != '#' {
		return ports.Include{}, false
	}
	rest = bytes.TrimLeft(rest[1:], " \t")

	switch {
	case bytes.HasPrefix(rest, []byte("include_next")):
		rest = rest[len("include_next"):]
	case bytes.HasPrefix(rest, []byte("include")):
		rest = rest[len("include"):]
	case bytes.HasPrefix(rest, []byte("import")):
		// Objective-C uses #import with the same path syntax.
		rest = rest[len("import"):]
	default:
		return ports.Include{}, false
	}

	if len(rest) == 0 || (rest[0] != ' ' && rest[0] != '\t') {
		// Some other token, e.g. an "includexyz" macro.
		return ports.Include{}, false
	}
	rest = bytes.TrimLeft(rest, " \t")
	if len(rest) == 0 {
		return ports.Include{}, false
	}

	var closer byte
	var system bool
	switch rest[0] {
	case '"':
		closer = '"'
	case '<':
		closer = '>'
		system = true
	default:
		return ports.Include{}, false
	}

	end := bytes.IndexByte(rest[1:], closer)
	if end < 0 {
		// Unterminated path, not an include we can resolve.
		return ports.Include{}, false
	}
	literal := rest[1 : 1+end]
	if len(literal) == 0 {
		return ports.Include{}, false
	}

	// Columns are 1-based byte offsets into the original line.
	startCol := len(line) - len(rest) + 1
	return ports.Include{
		Literal: string(literal),
		System:  system,
		Begin:   domain.Location{Line: lineNo, Column: startCol},
		End:     domain.Location{Line: lineNo, Column: startCol + end + 2},
	}, true
}
