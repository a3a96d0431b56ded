// Package config provides the manifest loader for mason.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// ManifestName is the file the loader discovers by walking up from cwd.
const ManifestName = "mason.yaml"

const supportedVersion = "1"

var _ ports.GraphLoader = (*Loader)(nil)

// Loader implements ports.GraphLoader using a YAML manifest.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load discovers the manifest starting at cwd and builds the target graph
// and build settings from it.
func (l *Loader) Load(cwd string) (*domain.Graph, *domain.BuildSettings, error) {
	manifestPath, err := l.findManifest(cwd)
	if err != nil {
		return nil, nil, err
	}

	var m Manifest
	if err := readAndUnmarshalYAML(manifestPath, &m); err != nil {
		return nil, nil, err
	}

	if m.Version != "" && m.Version != supportedVersion {
		l.Logger.Warn(fmt.Sprintf("manifest version %q is newer than supported %q; continuing anyway", m.Version, supportedVersion))
	}

	settings, err := buildSettings(manifestPath, &m)
	if err != nil {
		return nil, nil, err
	}

	graph, err := l.buildGraph(&m)
	if err != nil {
		return nil, nil, err
	}
	return graph, settings, nil
}

// findManifest walks up from cwd until it finds a manifest file.
func (l *Loader) findManifest(cwd string) (string, error) {
	currentDir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve working directory")
	}

	for {
		candidate := filepath.Join(currentDir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root.
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func buildSettings(manifestPath string, m *Manifest) (*domain.BuildSettings, error) {
	rootDir := filepath.Dir(manifestPath)
	if m.Root != "" {
		if filepath.IsAbs(m.Root) {
			rootDir = m.Root
		} else {
			rootDir = filepath.Join(rootDir, m.Root)
		}
	}

	buildDir := m.BuildDir
	if buildDir == "" {
		buildDir = "//out/"
	}
	if len(buildDir) < 3 || buildDir[:2] != "//" {
		return nil, zerr.With(zerr.New("build_dir must be a source-absolute directory"), "build_dir", m.BuildDir)
	}
	if buildDir[len(buildDir)-1] != '/' {
		buildDir += "/"
	}

	return &domain.BuildSettings{RootDir: rootDir, BuildDir: buildDir}, nil
}

// buildGraph creates the target universe in two passes: instantiate every
// target, then link dependency pointers.
func (l *Loader) buildGraph(m *Manifest) (*domain.Graph, error) {
	configs := make(map[string]*domain.Config, len(m.Configs))
	for name, dto := range m.Configs {
		configs[name] = &domain.Config{
			Name:        name,
			IncludeDirs: toSourceDirs(dto.IncludeDirs),
		}
	}

	g := domain.NewGraph()

	// First pass: instantiate targets so dependency links can resolve in
	// any declaration order. Iterate labels sorted for deterministic graph
	// order.
	labels := make(map[string]domain.Label, len(m.Targets))
	for _, labelStr := range sortedKeys(m.Targets) {
		label, err := domain.ParseLabel(labelStr)
		if err != nil {
			return nil, zerr.With(err, "target", labelStr)
		}
		labels[labelStr] = label

		t, err := buildTarget(label, m.Targets[labelStr], configs)
		if err != nil {
			return nil, zerr.With(err, "target", labelStr)
		}
		if err := g.AddTarget(t); err != nil {
			return nil, err
		}
	}

	// Second pass: link deps.
	for labelStr, dto := range m.Targets {
		t, _ := g.Target(labels[labelStr])
		var err error
		if t.PrivateDeps, err = linkDeps(g, dto.Deps); err != nil {
			return nil, zerr.With(err, "target", labelStr)
		}
		if t.PublicDeps, err = linkDeps(g, dto.PublicDeps); err != nil {
			return nil, zerr.With(err, "target", labelStr)
		}
	}

	return g, nil
}

func buildTarget(label domain.Label, dto *TargetDTO, configs map[string]*domain.Config) (*domain.Target, error) {
	kind, err := parseKind(dto.Kind)
	if err != nil {
		return nil, err
	}

	t := &domain.Target{
		Label:            label,
		Kind:             kind,
		Sources:          toSourceFiles(dto.Sources),
		AllHeadersPublic: dto.Public == nil,
		CheckIncludes:    dto.CheckIncludes == nil || *dto.CheckIncludes,
		OwnIncludeDirs:   toSourceDirs(dto.IncludeDirs),
		ActionOutputs:    toSourceFiles(dto.Outputs),
	}
	t.PublicHeaders = toSourceFiles(dto.Public)
	t.GeneratedPublicHeaders = toSourceFiles(dto.GeneratedHeaders)
	if dto.BridgeHeader != "" {
		t.BridgeHeader = domain.NewSourceFile(dto.BridgeHeader)
	}

	for _, pat := range dto.Friends {
		p, err := domain.ParseLabelPattern(pat)
		if err != nil {
			return nil, err
		}
		t.Friends = append(t.Friends, p)
	}

	if len(dto.AllowCircularIncludesFrom) > 0 {
		t.AllowCircularIncludesFrom = make(map[domain.Label]struct{}, len(dto.AllowCircularIncludesFrom))
		for _, ls := range dto.AllowCircularIncludesFrom {
			l, err := domain.ParseLabel(ls)
			if err != nil {
				return nil, err
			}
			t.AllowCircularIncludesFrom[l] = struct{}{}
		}
	}

	for _, name := range dto.Configs {
		c, ok := configs[name]
		if !ok {
			return nil, zerr.With(zerr.New("unknown config"), "config", name)
		}
		t.Configs = append(t.Configs, c)
	}

	return t, nil
}

func linkDeps(g *domain.Graph, deps []string) ([]*domain.Target, error) {
	if len(deps) == 0 {
		return nil, nil
	}
	out := make([]*domain.Target, 0, len(deps))
	for _, depStr := range deps {
		label, err := domain.ParseLabel(depStr)
		if err != nil {
			return nil, err
		}
		dep, ok := g.Target(label)
		if !ok {
			return nil, zerr.With(domain.ErrMissingDependency, "dependency", depStr)
		}
		out = append(out, dep)
	}
	return out, nil
}

func parseKind(s string) (domain.TargetKind, error) {
	switch s {
	case "source_set":
		return domain.KindSourceSet, nil
	case "static_library", "":
		return domain.KindStaticLibrary, nil
	case "shared_library":
		return domain.KindSharedLibrary, nil
	case "loadable_module":
		return domain.KindLoadableModule, nil
	case "executable":
		return domain.KindExecutable, nil
	case "action":
		return domain.KindAction, nil
	case "copy":
		return domain.KindCopy, nil
	case "group":
		return domain.KindGroup, nil
	default:
		return 0, zerr.With(zerr.New("unknown target kind"), "kind", s)
	}
}

func toSourceFiles(paths []string) []domain.SourceFile {
	if len(paths) == 0 {
		return nil
	}
	out := make([]domain.SourceFile, len(paths))
	for i, p := range paths {
		out[i] = domain.NewSourceFile(p)
	}
	return out
}

func toSourceDirs(paths []string) []domain.SourceDir {
	if len(paths) == 0 {
		return nil
	}
	out := make([]domain.SourceDir, len(paths))
	for i, p := range paths {
		out[i] = domain.NewSourceDir(p)
	}
	return out
}

func readAndUnmarshalYAML(path string, dest any) error {
	data, err := os.ReadFile(path) //nolint:gosec // Manifest path comes from discovery
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", path)
	}
	if err := yaml.Unmarshal(data, dest); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to parse manifest"), "path", path)
	}
	return nil
}

func sortedKeys(m map[string]*TargetDTO) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Deterministic target order keeps error output stable across runs.
	slices.Sort(keys)
	return keys
}
