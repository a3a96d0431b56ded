package domain

// TargetKind discriminates the declared unit types in the build graph.
type TargetKind int

const (
	// KindSourceSet is a collection of sources compiled into dependents.
	KindSourceSet TargetKind = iota
	// KindStaticLibrary is a static library.
	KindStaticLibrary
	// KindSharedLibrary is a shared library.
	KindSharedLibrary
	// KindLoadableModule is a runtime-loadable module.
	KindLoadableModule
	// KindExecutable is an executable.
	KindExecutable
	// KindAction is a script invocation with declared outputs.
	KindAction
	// KindCopy is a file-copy rule.
	KindCopy
	// KindGroup is a dependency-only grouping.
	KindGroup
)

// Target is a fully resolved unit of the build graph. Targets are built
// once by the graph loader and read-only afterwards, so any goroutine may
// read them without locking.
type Target struct {
	Label Label
	Kind  TargetKind

	// Sources are the declared source files, headers included.
	Sources []SourceFile

	// PublicHeaders lists headers explicitly exported to dependents. When
	// AllHeadersPublic is set this list must be empty; every source is
	// treated as public instead.
	PublicHeaders    []SourceFile
	AllHeadersPublic bool

	// PublicDeps propagate header visibility transitively; PrivateDeps do
	// not, except for the direct dependent.
	PublicDeps  []*Target
	PrivateDeps []*Target

	// Friends may include this target's private headers.
	Friends []LabelPattern

	// AllowCircularIncludesFrom lists labels permitted to include this
	// target's headers without any dependency path at all.
	AllowCircularIncludesFrom map[Label]struct{}

	// CheckIncludes is the per-target opt-out for the include checker.
	CheckIncludes bool

	// OwnIncludeDirs come from the target declaration itself; Configs
	// contribute more, in declaration order.
	OwnIncludeDirs []SourceDir
	Configs        []*Config

	// ActionOutputs are the declared outputs of action-style targets.
	ActionOutputs []SourceFile

	// BridgeHeader and GeneratedPublicHeaders are only meaningful for
	// targets that build a Swift module.
	BridgeHeader           SourceFile
	GeneratedPublicHeaders []SourceFile
}

// IsBinary reports whether the target compiles sources, which is the only
// kind of target whose files get include-checked.
func (t *Target) IsBinary() bool {
	switch t.Kind {
	case KindSourceSet, KindStaticLibrary, KindSharedLibrary,
		KindLoadableModule, KindExecutable:
		return true
	default:
		return false
	}
}

// BuildsSwiftModule reports whether the target compiles Swift sources into
// a module, which makes its bridge header and generated headers visible to
// the checker.
func (t *Target) BuildsSwiftModule() bool {
	if !t.IsBinary() {
		return false
	}
	for _, s := range t.Sources {
		if s.Kind() == KindSwift {
			return true
		}
	}
	return false
}

// IncludeDirs returns the header search path contributed by the target and
// every config in its chain, preserving declaration order. Duplicates are
// kept; resolution takes the first match anyway.
func (t *Target) IncludeDirs() []SourceDir {
	dirs := make([]SourceDir, 0, len(t.OwnIncludeDirs))
	dirs = append(dirs, t.OwnIncludeDirs...)
	for _, c := range t.Configs {
		dirs = append(dirs, c.IncludeDirs...)
	}
	return dirs
}

// AllowsCircularIncludesFrom reports whether the given label is on the
// target's circular-include allowlist.
func (t *Target) AllowsCircularIncludesFrom(l Label) bool {
	_, ok := t.AllowCircularIncludesFrom[l]
	return ok
}
