// Package checker verifies that every #include in a compilable source file
// names a header the including target is permitted to see: the header's
// target must be reachable through an appropriate dependency chain, and
// the header must be effectively public to the includer.
package checker

import (
	"fmt"
	"sync"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
)

// Checker runs the header-inclusion check over a resolved target graph.
// Construct one per run; the file map and reachability caches do not carry
// over between invocations.
type Checker struct {
	settings       *domain.BuildSettings
	checkGenerated bool
	checkSystem    bool

	fsys    ports.FileSystem
	scanner ports.IncludeScanner
	pool    ports.WorkerPool
	arena   ports.BufferArena

	// fileMap covers every file of every known target, not only the ones
	// being checked; resolution and generated-file detection need the
	// whole universe. Immutable once New returns.
	fileMap fileMap

	shards [numCacheShards]cacheShard

	errsMu sync.Mutex
	errs   []*domain.CheckError
}

// New builds a Checker over the full target universe. checkGenerated also
// checks generated files, which is only meaningful after a build has
// produced them; checkSystem extends checking to <...> includes.
func New(
	settings *domain.BuildSettings,
	targets []*domain.Target,
	checkGenerated bool,
	checkSystem bool,
	fsys ports.FileSystem,
	scanner ports.IncludeScanner,
	pool ports.WorkerPool,
	arena ports.BufferArena,
) (*Checker, error) {
	c := &Checker{
		settings:       settings,
		checkGenerated: checkGenerated,
		checkSystem:    checkSystem,
		fsys:           fsys,
		scanner:        scanner,
		pool:           pool,
		arena:          arena,
		fileMap:        make(fileMap),
	}
	for _, t := range targets {
		if err := addTargetToFileMap(t, c.fileMap); err != nil {
			return nil, err
		}
	}
	for i := range c.shards {
		c.shards[i].caches = make(map[*domain.Target]*reachabilityCache)
	}
	return c, nil
}

// Run checks the given targets and returns every violation found. A nil
// slice means the check passed. forceCheck overrides targets opting out
// via check_includes. Run returns only after every spawned task finished;
// the violation list has no defined order.
func (c *Checker) Run(toCheck []*domain.Target, forceCheck bool) ([]*domain.CheckError, error) {
	filesToCheck := make(fileMap)
	for _, t := range toCheck {
		// The caller hands over all target types; only binary targets have
		// compilable sources to check.
		if !t.IsBinary() {
			continue
		}
		if err := addTargetToFileMap(t, filesToCheck); err != nil {
			return nil, err
		}
	}

	c.runCheckOverFiles(filesToCheck, forceCheck)

	c.errsMu.Lock()
	defer c.errsMu.Unlock()
	return c.errs, nil
}

// runCheckOverFiles spawns one task per (target, file) pair and blocks
// until all of them completed.
func (c *Checker) runCheckOverFiles(files fileMap, forceCheck bool) {
	var wg sync.WaitGroup

	for file, claims := range files {
		// Only C-like source files; resource scripts have includes too.
		if !file.Kind().HasIncludes() {
			continue
		}

		if !c.checkGenerated {
			// If any target marks the file generated, skip it. This has to
			// consult the full map: files only covers the targets being
			// checked.
			generated := false
			for _, info := range c.fileMap[file] {
				generated = generated || info.isGenerated
			}
			if generated {
				continue
			}
		}

		for _, info := range claims {
			if !info.target.CheckIncludes && !forceCheck {
				continue
			}
			wg.Add(1)
			target := info.target
			c.pool.Spawn(func() {
				defer wg.Done()
				c.doWork(target, file)
			})
		}
	}

	wg.Wait()
}

// doWork runs one check task and merges its errors into the global list.
func (c *Checker) doWork(target *domain.Target, file domain.SourceFile) {
	var errs []*domain.CheckError
	if !c.checkFile(target, file, &errs) {
		c.errsMu.Lock()
		c.errs = append(c.errs, errs...)
		c.errsMu.Unlock()
	}
}

// checkFile checks every include of one file belonging to fromTarget.
// It reports whether the file passed.
func (c *Checker) checkFile(fromTarget *domain.Target, file domain.SourceFile, errs *[]*domain.CheckError) bool {
	// Generated files included as sources of another target don't exist at
	// checking time. All generated files live in the output tree, so the
	// name alone tells us to skip.
	if !c.checkGenerated && c.settings.IsInBuildDir(file) {
		return true
	}

	contents, err := c.fsys.ReadFile(c.settings.FullPath(file))
	if err != nil {
		// A missing not-yet-generated file is acceptable; this code does
		// not understand conditional includes either.
		if c.settings.IsInBuildDir(file) {
			return true
		}
		*errs = append(*errs, &domain.CheckError{
			Kind:  domain.SourceFileNotFound,
			Title: "Source file not found.",
			Body: fmt.Sprintf("The target:\n  %s\nhas a source file:\n  %s\nwhich was not found.",
				fromTarget.Label.String(), file.String()),
		})
		return false
	}

	// The search path concatenates the include dirs of every configuration
	// contributing to the target, in declaration order. Duplicates are
	// fine; resolution takes the first match.
	searchPath := fromTarget.IncludeDirs()

	before := len(*errs)

	// Per-file memo of (destination, source) pairs already proven
	// non-dependent, so one file with many includes of the same missing
	// target doesn't query the reachability engine over and over.
	noDependencyMemo := make(map[targetPair]struct{})

	for inc := range c.scanner.Scan(contents) {
		if inc.System && !c.checkSystem {
			continue
		}
		included := c.sourceFileForInclude(inc, searchPath, file)
		if included.IsNull() {
			// Unknown headers are allowed: the scanner has no idea which
			// preprocessor branch this include sits in.
			continue
		}
		c.checkInclude(fromTarget, file, contents, included, inc, noDependencyMemo, errs)
	}

	return len(*errs) == before
}

// targetPair keys the per-file non-dependency memo.
type targetPair struct {
	to   *domain.Target
	from *domain.Target
}

// checkInclude verifies one resolved include of file against the claims of
// includeFile. For all targets claiming it, at least one must be reachable
// from fromTarget, and either the header is public within that target or a
// friend clause allowlists the includer. With multiple claims, one good
// one is enough: success clears any error a worse claim produced earlier.
func (c *Checker) checkInclude(
	fromTarget *domain.Target,
	file domain.SourceFile,
	contents []byte,
	includeFile domain.SourceFile,
	inc ports.Include,
	noDependencyMemo map[targetPair]struct{},
	errs *[]*domain.CheckError,
) {
	// A file not claimed by any target is not checkable. It would be nice
	// to error here, but the scanner returns every lexical include, even
	// ones inside a #if this build never compiles, and those headers are
	// routinely absent from the graph.
	claims, ok := c.fileMap[includeFile]
	if !ok {
		return
	}

	// If no claim lives in the includer's toolchain the file is a
	// cross-toolchain artefact; reasoning about it produces false
	// positives (the classic case is seeing another platform's definition
	// of the same target while cross-compiling).
	presentInToolchain := false
	for _, claim := range claims {
		if fromTarget.Label.ToolchainsEqual(claim.target.Label) {
			presentInToolchain = true
			break
		}
	}
	if !presentInToolchain {
		return
	}

	cache := c.cacheFor(fromTarget)

	// With more than one claim we may hit error cases before a good one;
	// pendingError holds the latest candidate, thrown away on success.
	var pendingError *domain.CheckError
	foundDependency := false

	for _, claim := range claims {
		toTarget := claim.target

		// A target's own files may always include each other.
		if toTarget == fromTarget {
			return
		}

		_, knownNoDependency := noDependencyMemo[targetPair{to: toTarget, from: fromTarget}]
		addToMemo := !knownNoDependency

		var chain Chain
		var depFound, permitted bool
		if !knownNoDependency {
			chain, depFound, permitted = c.isDependencyOf(toTarget, cache)
		}

		if depFound {
			addToMemo = false
			foundDependency = true

			effectivelyPublic := claim.isPublic ||
				domain.PatternsMatch(toTarget.Friends, fromTarget.Label)

			if effectivelyPublic && permitted {
				// This one is OK, we're done.
				pendingError = nil
				break
			}

			if !effectivelyPublic {
				pendingError = &domain.CheckError{
					Kind:  domain.PrivateHeader,
					Where: c.persistentRange(file, contents, inc),
					Title: "Including a private header.",
					Body:  "This file is private to the target " + toTarget.Label.String(),
				}
			} else {
				pendingError = &domain.CheckError{
					Kind:  domain.NonPublicChain,
					Where: c.persistentRange(file, contents, inc),
					Title: "Can't include this header from here.",
					Body:  renderChainError(chain),
				}
			}
		} else if toTarget.AllowsCircularIncludesFrom(fromTarget.Label) {
			// Not a dependency, but the destination allowlists the includer.
			foundDependency = true
			pendingError = nil
			break
		}

		if addToMemo {
			noDependencyMemo[targetPair{to: toTarget, from: fromTarget}] = struct{}{}
		}
	}

	if !foundDependency {
		*errs = append(*errs, c.makeUnreachableError(file, contents, inc, fromTarget, claims))
	} else if pendingError != nil {
		*errs = append(*errs, pendingError)
	}
}

// persistentRange rewrites the include's location onto an arena-held clone
// of the file contents, so the error outlives this task's buffer.
func (c *Checker) persistentRange(file domain.SourceFile, contents []byte, inc ports.Include) domain.LocationRange {
	return domain.LocationRange{
		File:  c.arena.Persist(file.String(), contents),
		Begin: inc.Begin,
		End:   inc.End,
	}
}
