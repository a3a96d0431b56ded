package ports

import (
	"iter"

	"go.trai.ch/mason/internal/core/domain"
)

// Include is one lexical #include directive found in a file.
type Include struct {
	// Literal is the path between the delimiters, e.g. "base/files/util.h".
	Literal string

	// System is true for <...> includes, false for "..." includes.
	System bool

	// Begin and End delimit the include path within the scanned file,
	// including the quote or bracket characters.
	Begin domain.Location
	End   domain.Location
}

// IncludeScanner produces the lexical include directives of a file buffer.
// The scanner is preprocessor-unaware: it reports every directive, whether
// or not conditional compilation would keep it.
//
//go:generate mockgen -source=scanner.go -destination=mocks/mock_scanner.go -package=mocks
type IncludeScanner interface {
	// Scan returns a lazy sequence over the include directives in contents.
	Scan(contents []byte) iter.Seq[Include]
}
