package checker

import (
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/zerr"
)

// targetInfo is one claim of a source file: the target asserting ownership
// plus the file's visibility within it.
type targetInfo struct {
	target      *domain.Target
	isPublic    bool
	isGenerated bool
}

// fileMap maps every known source file to its claims, in the order the
// claiming targets were added. It is built once and read-only afterwards.
type fileMap map[domain.SourceFile][]targetInfo

// publicGeneratedPair accumulates a file's flags while one target's lists
// are merged.
type publicGeneratedPair struct {
	isPublic    bool
	isGenerated bool
}

// addTargetToFileMap merges the target's files into dest. Merge order
// matters: the public list may upgrade a plain source entry to public,
// while Swift and action outputs add entries of their own.
func addTargetToFileMap(t *domain.Target, dest fileMap) error {
	defaultPublic := t.AllHeadersPublic

	// The public list is only meaningful when the default is non-public.
	// Both at once is a bug in whoever resolved the target, not a user
	// error the checker can report a location for.
	if defaultPublic && len(t.PublicHeaders) > 0 {
		return zerr.With(domain.ErrPublicHeadersWithDefaultPublic,
			"target", t.Label.UserVisibleName(true))
	}

	files := make(map[domain.SourceFile]*publicGeneratedPair)
	var order []domain.SourceFile
	entry := func(f domain.SourceFile) *publicGeneratedPair {
		if p, ok := files[f]; ok {
			return p
		}
		p := &publicGeneratedPair{}
		files[f] = p
		order = append(order, f)
		return p
	}

	// Normal sources get the default visibility. Depending on the compiled
	// target is enough to be allowed to include these.
	for _, source := range t.Sources {
		entry(source).isPublic = defaultPublic
	}

	// Public headers are forced public, upgrading any entry from above.
	for _, source := range t.PublicHeaders {
		entry(source).isPublic = true
	}

	// A Swift-style module may use a bridge header with default visibility
	// and generates public headers that dependents include.
	if t.BuildsSwiftModule() {
		if !t.BridgeHeader.IsNull() {
			entry(t.BridgeHeader).isPublic = defaultPublic
		}
		for _, output := range t.GeneratedPublicHeaders {
			if output.Kind() != domain.KindHeader {
				continue
			}
			p := entry(output)
			p.isPublic = true
			p.isGenerated = true
		}
	}

	// Action outputs are public: if dependents couldn't use them there
	// would be no point emitting them.
	for _, output := range t.ActionOutputs {
		p := entry(output)
		p.isPublic = true
		p.isGenerated = true
	}

	for _, f := range order {
		p := files[f]
		dest[f] = append(dest[f], targetInfo{
			target:      t,
			isPublic:    p.isPublic,
			isGenerated: p.isGenerated,
		})
	}
	return nil
}
