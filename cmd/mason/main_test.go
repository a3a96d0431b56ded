package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mason/internal/app"
)

func graftProvider(ctx context.Context) (*app.Components, func(), error) {
	c, _, err := graft.ExecuteFor[*app.Components](ctx)
	return c, func() {}, err
}

// writeTree writes a manifest plus source files under a temp dir and
// chdirs into it for the duration of the test.
func writeTree(t *testing.T, manifest string, files map[string]string) {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "mason.yaml"), []byte(manifest), 0o644))
	for rel, contents := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	}
	t.Chdir(dir)
}

func TestRun_CheckPasses(t *testing.T) {
	writeTree(t, `
version: "1"
targets:
  "//lib:lib":
    kind: static_library
    sources: ["//lib/impl.cc"]
    public: ["//lib/lib.h"]
  "//app:app":
    kind: executable
    sources: ["//app/main.cc"]
    deps: ["//lib:lib"]
    include_dirs: ["//"]
`, map[string]string{
		"lib/impl.cc": "#include \"lib.h\"\n",
		"lib/lib.h":   "#pragma once\n",
		"app/main.cc": "#include \"lib/lib.h\"\nint main() {}\n",
	})

	stderr := new(bytes.Buffer)
	exit := run(context.Background(), []string{"check"}, stderr, graftProvider)
	assert.Equal(t, 0, exit, "stderr: %s", stderr.String())
}

func TestRun_CheckFails(t *testing.T) {
	writeTree(t, `
version: "1"
targets:
  "//lib:lib":
    kind: static_library
    sources: ["//lib/secret.h"]
    public: ["//lib/lib.h"]
  "//app:app":
    kind: executable
    sources: ["//app/main.cc"]
    deps: ["//lib:lib"]
    include_dirs: ["//"]
`, map[string]string{
		"lib/lib.h":    "#pragma once\n",
		"lib/secret.h": "#pragma once\n",
		"app/main.cc":  "#include \"lib/secret.h\"\nint main() {}\n",
	})

	stderr := new(bytes.Buffer)
	exit := run(context.Background(), []string{"check"}, stderr, graftProvider)
	assert.Equal(t, 1, exit)
}

func TestRun_NoManifest(t *testing.T) {
	t.Chdir(t.TempDir())

	stderr := new(bytes.Buffer)
	exit := run(context.Background(), []string{"check"}, stderr, graftProvider)
	assert.Equal(t, 1, exit)
}
