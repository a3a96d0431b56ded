package checker

import (
	"sync"
	"testing"

	"go.trai.ch/mason/internal/core/domain"
)

// testChecker builds a bare Checker suitable for reachability queries.
func testChecker(t *testing.T) *Checker {
	t.Helper()
	c := &Checker{fileMap: make(fileMap)}
	for i := range c.shards {
		c.shards[i].caches = make(map[*domain.Target]*reachabilityCache)
	}
	return c
}

func target(t *testing.T, labelStr string) *domain.Target {
	t.Helper()
	return &domain.Target{
		Label:         label(t, labelStr),
		Kind:          domain.KindStaticLibrary,
		CheckIncludes: true,
	}
}

func publicDep(from, to *domain.Target) {
	from.PublicDeps = append(from.PublicDeps, to)
}

func privateDep(from, to *domain.Target) {
	from.PrivateDeps = append(from.PrivateDeps, to)
}

func TestIsDependencyOf_Self(t *testing.T) {
	c := testChecker(t)
	s := target(t, "//s:s")

	chain, found, permitted := c.isDependencyOf(s, c.cacheFor(s))
	if found {
		t.Error("a target is not reported as a dependency of itself")
	}
	if !permitted {
		t.Error("self-reference is permitted by convention")
	}
	if len(chain) != 0 {
		t.Errorf("self-reference has no chain, got %v", chain)
	}
}

func TestIsDependencyOf_DirectPublic(t *testing.T) {
	c := testChecker(t)
	s, d := target(t, "//s:s"), target(t, "//d:d")
	publicDep(s, d)

	chain, found, permitted := c.isDependencyOf(d, c.cacheFor(s))
	if !found || !permitted {
		t.Fatalf("found=%v permitted=%v, want both true", found, permitted)
	}
	if len(chain) != 2 || chain[0].Target != d || chain[1].Target != s {
		t.Fatalf("chain = %v, want [d, s]", chain)
	}
	if !chain[0].IsPublic {
		t.Error("edge into the destination is public")
	}
}

func TestIsDependencyOf_DirectPrivateIsPermitted(t *testing.T) {
	c := testChecker(t)
	s, d := target(t, "//s:s"), target(t, "//d:d")
	privateDep(s, d)

	chain, found, permitted := c.isDependencyOf(d, c.cacheFor(s))
	if !found {
		t.Fatal("direct private dep must be found")
	}
	if !permitted {
		t.Error("the first hop may be private and still counts as permitted")
	}
	if len(chain) != 2 {
		t.Fatalf("chain length = %d, want 2", len(chain))
	}
	if chain[0].IsPublic {
		t.Error("the private edge is recorded as private in the chain")
	}
}

func TestIsDependencyOf_IndirectPrivateNotPermitted(t *testing.T) {
	c := testChecker(t)
	s, m, d := target(t, "//s:s"), target(t, "//m:m"), target(t, "//d:d")
	publicDep(s, m)
	privateDep(m, d)

	chain, found, permitted := c.isDependencyOf(d, c.cacheFor(s))
	if !found {
		t.Fatal("d is reachable via any-edge walk")
	}
	if permitted {
		t.Error("a private edge after the first hop is not permitted")
	}
	if len(chain) != 3 || chain[0].Target != d || chain[1].Target != m || chain[2].Target != s {
		t.Fatalf("chain = %v, want [d, m, s]", chain)
	}
}

func TestIsDependencyOf_IndirectPublicIsPermitted(t *testing.T) {
	c := testChecker(t)
	s, m, d := target(t, "//s:s"), target(t, "//m:m"), target(t, "//d:d")
	privateDep(s, m) // First hop may be private.
	publicDep(m, d)

	_, found, permitted := c.isDependencyOf(d, c.cacheFor(s))
	if !found || !permitted {
		t.Errorf("found=%v permitted=%v, want both true", found, permitted)
	}
}

func TestIsDependencyOf_PermittedDominatesAny(t *testing.T) {
	c := testChecker(t)
	s := target(t, "//s:s")
	a, b := target(t, "//a:a"), target(t, "//b:b")
	d := target(t, "//d:d")

	// Short non-permitted path: s -> a -[private]-> d.
	publicDep(s, a)
	privateDep(a, d)
	// Longer permitted path: s -> b -> d, all public.
	publicDep(s, b)
	publicDep(b, d)

	chain, found, permitted := c.isDependencyOf(d, c.cacheFor(s))
	if !found || !permitted {
		t.Fatalf("found=%v permitted=%v, want both true: a permitted chain exists", found, permitted)
	}
	for _, link := range chain[:len(chain)-1] {
		if !link.IsPublic {
			t.Errorf("permitted chain contains a private edge at %s", link.Target.Label)
		}
	}
}

func TestIsDependencyOf_Unreachable(t *testing.T) {
	c := testChecker(t)
	s, d := target(t, "//s:s"), target(t, "//d:d")

	_, found, permitted := c.isDependencyOf(d, c.cacheFor(s))
	if found || permitted {
		t.Errorf("found=%v permitted=%v, want both false", found, permitted)
	}
}

func TestIsDependencyOf_CycleTerminates(t *testing.T) {
	c := testChecker(t)
	s, a, b := target(t, "//s:s"), target(t, "//a:a"), target(t, "//b:b")
	publicDep(s, a)
	publicDep(a, b)
	publicDep(b, a) // cycle a <-> b
	publicDep(b, s) // cycle back to the source

	chain, found, permitted := c.isDependencyOf(b, c.cacheFor(s))
	if !found || !permitted {
		t.Fatalf("found=%v permitted=%v", found, permitted)
	}
	if len(chain) != 3 {
		t.Errorf("chain = %v, want length 3", chain)
	}
}

func TestIsDependencyOf_FirstDiscoveryWins(t *testing.T) {
	c := testChecker(t)
	s := target(t, "//s:s")
	b, cc, d := target(t, "//b:b"), target(t, "//c:c"), target(t, "//d:d")

	// Diamond: both b and c lead to d; b is declared first, so the
	// breadcrumb for d records b.
	publicDep(s, b)
	publicDep(s, cc)
	publicDep(b, d)
	publicDep(cc, d)

	chain, found, _ := c.isDependencyOf(d, c.cacheFor(s))
	if !found {
		t.Fatal("d must be reachable")
	}
	if len(chain) != 3 || chain[1].Target != b {
		t.Errorf("chain = %v, want the b route (first discovered)", chain)
	}
}

func TestIsDependencyOf_MemoizedAcrossQueries(t *testing.T) {
	c := testChecker(t)
	s, d := target(t, "//s:s"), target(t, "//d:d")
	publicDep(s, d)

	cache := c.cacheFor(s)
	if got := c.cacheFor(s); got != cache {
		t.Fatal("cacheFor must return the same cache per source target")
	}

	first, found1, _ := c.isDependencyOf(d, cache)
	second, found2, _ := c.isDependencyOf(d, cache)
	if !found1 || !found2 {
		t.Fatal("both queries must find the dependency")
	}
	if len(first) != len(second) {
		t.Error("memoized result differs from the first")
	}
}

func TestIsDependencyOf_ConcurrentQueries(t *testing.T) {
	c := testChecker(t)
	s := target(t, "//s:s")
	prev := s
	var last *domain.Target
	for _, name := range []string{"//a:a", "//b:b", "//c:c", "//d:d"} {
		next := target(t, name)
		publicDep(prev, next)
		prev = next
		last = next
	}

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			chain, found, permitted := c.isDependencyOf(last, c.cacheFor(s))
			if !found || !permitted || len(chain) != 5 {
				t.Errorf("concurrent query: found=%v permitted=%v len=%d", found, permitted, len(chain))
			}
		}()
	}
	wg.Wait()
}
