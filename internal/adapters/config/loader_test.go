package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mason/internal/adapters/config"
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

var _ ports.Logger = nopLogger{}

// writeManifest drops a mason.yaml with the given body into a temp dir.
func writeManifest(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ManifestName), []byte(body), 0o644))
	return dir
}

func TestLoader_Load(t *testing.T) {
	dir := writeManifest(t, `
version: "1"
build_dir: //out
configs:
  shared_includes:
    include_dirs: ["//include/"]
targets:
  "//base:base":
    kind: static_library
    sources: ["//base/util.cc", "//base/util.h"]
    public: ["//base/public.h"]
    include_dirs: ["//base/"]
    configs: [shared_includes]
  "//app:app":
    kind: executable
    sources: ["//app/main.cc"]
    deps: ["//base:base"]
    check_includes: false
`)

	loader := config.NewLoader(nopLogger{})
	graph, settings, err := loader.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, settings.RootDir)
	assert.Equal(t, "//out/", settings.BuildDir)
	require.Equal(t, 2, graph.TargetCount())

	base, ok := graph.Target(mustLabel(t, "//base:base"))
	require.True(t, ok)
	assert.Equal(t, domain.KindStaticLibrary, base.Kind)
	assert.False(t, base.AllHeadersPublic, "explicit public list disables default-public")
	assert.Len(t, base.PublicHeaders, 1)
	assert.True(t, base.CheckIncludes, "check_includes defaults to true")

	dirs := base.IncludeDirs()
	require.Len(t, dirs, 2)
	assert.Equal(t, "//base/", dirs[0].String())
	assert.Equal(t, "//include/", dirs[1].String(), "config include dirs follow the target's own")

	app, ok := graph.Target(mustLabel(t, "//app:app"))
	require.True(t, ok)
	assert.True(t, app.AllHeadersPublic, "no public list means all headers public")
	assert.False(t, app.CheckIncludes)
	require.Len(t, app.PrivateDeps, 1)
	assert.Same(t, base, app.PrivateDeps[0], "deps are linked to the actual target")
}

func TestLoader_Load_Discovery(t *testing.T) {
	dir := writeManifest(t, `
targets:
  "//a:a":
    kind: source_set
`)
	nested := filepath.Join(dir, "sub", "deeper")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	loader := config.NewLoader(nopLogger{})
	graph, settings, err := loader.Load(nested)
	require.NoError(t, err)
	assert.Equal(t, 1, graph.TargetCount())
	assert.Equal(t, dir, settings.RootDir, "root is the manifest's directory")
}

func TestLoader_Load_NoManifest(t *testing.T) {
	loader := config.NewLoader(nopLogger{})
	_, _, err := loader.Load(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigNotFound))
}

func TestLoader_Load_MissingDependency(t *testing.T) {
	dir := writeManifest(t, `
targets:
  "//a:a":
    kind: source_set
    deps: ["//nope:nope"]
`)
	loader := config.NewLoader(nopLogger{})
	_, _, err := loader.Load(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingDependency))
}

func TestLoader_Load_BadKind(t *testing.T) {
	dir := writeManifest(t, `
targets:
  "//a:a":
    kind: spaceship
`)
	loader := config.NewLoader(nopLogger{})
	_, _, err := loader.Load(dir)
	require.Error(t, err)
}

func TestLoader_Load_BadLabel(t *testing.T) {
	dir := writeManifest(t, `
targets:
  "not-a-label":
    kind: source_set
`)
	loader := config.NewLoader(nopLogger{})
	_, _, err := loader.Load(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidLabel))
}

func TestLoader_Load_FriendsAndCircular(t *testing.T) {
	dir := writeManifest(t, `
targets:
  "//lib:lib":
    kind: static_library
    sources: ["//lib/l.h"]
    friends: ["//test/*"]
    allow_circular_includes_from: ["//app:app"]
  "//app:app":
    kind: executable
    sources: ["//app/m.cc"]
`)
	loader := config.NewLoader(nopLogger{})
	graph, _, err := loader.Load(dir)
	require.NoError(t, err)

	lib, ok := graph.Target(mustLabel(t, "//lib:lib"))
	require.True(t, ok)
	require.Len(t, lib.Friends, 1)
	assert.True(t, lib.Friends[0].Matches(mustLabel(t, "//test/unit:unit")))
	assert.True(t, lib.AllowsCircularIncludesFrom(mustLabel(t, "//app:app")))
	assert.False(t, lib.AllowsCircularIncludesFrom(mustLabel(t, "//other:other")))
}

func mustLabel(t *testing.T, s string) domain.Label {
	t.Helper()
	l, err := domain.ParseLabel(s)
	require.NoError(t, err)
	return l
}
