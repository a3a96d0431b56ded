package checker

import (
	"testing"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
)

func resolverChecker(t *testing.T, known ...string) *Checker {
	t.Helper()
	c := testChecker(t)
	owner := target(t, "//owner:owner")
	for _, f := range known {
		c.fileMap[file(f)] = []targetInfo{{target: owner}}
	}
	return c
}

func quoted(literal string) ports.Include {
	return ports.Include{Literal: literal}
}

func system(literal string) ports.Include {
	return ports.Include{Literal: literal, System: true}
}

func dirs(paths ...string) []domain.SourceDir {
	out := make([]domain.SourceDir, len(paths))
	for i, p := range paths {
		out[i] = domain.NewSourceDir(p)
	}
	return out
}

func TestSourceFileForInclude_ContainingDirFirst(t *testing.T) {
	c := resolverChecker(t, "//s/x.h", "//inc/x.h")
	containing := file("//s/main.cc")

	got := c.sourceFileForInclude(quoted("x.h"), dirs("//inc/"), containing)
	if got.String() != "//s/x.h" {
		t.Errorf("quoted include resolves against the containing dir first, got %q", got.String())
	}

	// System-style includes skip the containing directory.
	got = c.sourceFileForInclude(system("x.h"), dirs("//inc/"), containing)
	if got.String() != "//inc/x.h" {
		t.Errorf("system include must use the search path only, got %q", got.String())
	}
}

func TestSourceFileForInclude_FirstMatchWins(t *testing.T) {
	c := resolverChecker(t, "//a/x.h", "//b/x.h")

	got := c.sourceFileForInclude(quoted("x.h"), dirs("//a/", "//b/"), file("//s/main.cc"))
	if got.String() != "//a/x.h" {
		t.Errorf("first matching directory wins, got %q", got.String())
	}

	got = c.sourceFileForInclude(quoted("x.h"), dirs("//b/", "//a/"), file("//s/main.cc"))
	if got.String() != "//b/x.h" {
		t.Errorf("declaration order decides, got %q", got.String())
	}
}

func TestSourceFileForInclude_SkipsNonMatchingDirs(t *testing.T) {
	c := resolverChecker(t, "//deep/x.h")

	got := c.sourceFileForInclude(quoted("x.h"), dirs("//a/", "//b/", "//deep/"), file("//s/main.cc"))
	if got.String() != "//deep/x.h" {
		t.Errorf("resolution keeps scanning until a known file appears, got %q", got.String())
	}
}

func TestSourceFileForInclude_NoMatch(t *testing.T) {
	c := resolverChecker(t, "//a/x.h")

	got := c.sourceFileForInclude(quoted("y.h"), dirs("//a/"), file("//s/main.cc"))
	if !got.IsNull() {
		t.Errorf("unknown include resolves to the null file, got %q", got.String())
	}

	got = c.sourceFileForInclude(quoted("x.h"), nil, file("//s/main.cc"))
	if !got.IsNull() {
		t.Errorf("empty search path and no containing match yields null, got %q", got.String())
	}
}

func TestSourceFileForInclude_RelativeTraversal(t *testing.T) {
	c := resolverChecker(t, "//a/x.h")

	got := c.sourceFileForInclude(quoted("../a/x.h"), dirs("//b/"), file("//s/main.cc"))
	if got.String() != "//a/x.h" {
		t.Errorf("dot-dot literals fold lexically, got %q", got.String())
	}

	got = c.sourceFileForInclude(quoted("../../../x.h"), dirs("//b/"), file("//s/main.cc"))
	if !got.IsNull() {
		t.Errorf("escaping the source root resolves to null, got %q", got.String())
	}
}
