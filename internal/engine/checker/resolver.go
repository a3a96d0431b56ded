package checker

import (
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
)

// sourceFileForInclude resolves an include literal to a known source-file
// identity. Quoted includes try the containing file's own directory first,
// then the search path in declaration order; the first directory whose
// resolution names a file the file map knows about wins. The null file
// means nothing matched, which is not an error: the scanner reports
// includes the preprocessor may never compile.
func (c *Checker) sourceFileForInclude(inc ports.Include, searchPath []domain.SourceDir, containing domain.SourceFile) domain.SourceFile {
	known := func(dir domain.SourceDir) (domain.SourceFile, bool) {
		f := dir.ResolveRelativeFile(inc.Literal)
		if f.IsNull() {
			return domain.SourceFile{}, false
		}
		_, ok := c.fileMap[f]
		return f, ok
	}

	if !inc.System {
		if f, ok := known(containing.Dir()); ok {
			return f
		}
	}

	for _, dir := range searchPath {
		if f, ok := known(dir); ok {
			return f
		}
	}
	return domain.SourceFile{}
}
